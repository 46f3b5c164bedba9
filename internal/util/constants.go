package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量（讲义仅接受 PDF）
const (
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

// VirtualEmailDomain 虚拟邮箱域名，仅用于满足凭据模型，不可投递
const VirtualEmailDomain = "weiterbildung.local"
