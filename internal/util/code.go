package util

import (
	"math/rand/v2"
	"strings"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// CodeLength 登录码长度，码会展示给参与者并当作凭据密钥使用
	CodeLength = 6
)

// GenerateCode 生成 6 位大写字母数字登录码。
// 不要求密码学强度（封闭的小规模人群，人工抄写），
// 碰撞检查由调用方针对存储做。
func GenerateCode() string {
	var b strings.Builder
	b.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}
	return b.String()
}
