package util

import (
	"regexp"
	"testing"
)

func TestGenerateCodeAlphabet(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 200; i++ {
		code := GenerateCode()
		if !valid.MatchString(code) {
			t.Fatalf("code %q outside [A-Z0-9]{6}", code)
		}
	}
}

func TestGenerateCodeSpread(t *testing.T) {
	// 生成器不是唯一性的保障（唯一索引才是），但明显的重复
	// 说明随机源坏了
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		seen[GenerateCode()] = true
	}
	if len(seen) < 990 {
		t.Errorf("only %d distinct codes out of 1000", len(seen))
	}
}
