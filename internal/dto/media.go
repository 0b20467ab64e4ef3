package dto

// PresignRequest 请求一个图片直传地址
type PresignRequest struct {
	// Destino 为 "principal" (主图) 或 "galeria" (图集)
	Destino     string `json:"destino" binding:"required,oneof=principal galeria"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	Filename    string `json:"filename" binding:"max=255"`
}

// PresignResponse 是直传授权
type PresignResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
