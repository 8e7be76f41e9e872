package dto

// UploadResponse 图片上传响应
type UploadResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Format       string `json:"format"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
	OriginalName string `json:"original_name"`
}

// QRCodeRequest 生成二维码请求
type QRCodeRequest struct {
	ImgURL string `json:"img_url"`
}

// QRCodeResponse 二维码响应
type QRCodeResponse struct {
	URL string `json:"url"`
}
