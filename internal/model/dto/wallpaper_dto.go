package dto

// SaveWallpaperRequest 保存壁纸元数据
type SaveWallpaperRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	URL          string `json:"url" binding:"required,max=255"`
	ThumbnailURL string `json:"thumbnail_url" binding:"max=255"`
	Alt          string `json:"alt" binding:"max=255"`
	Type         string `json:"type" binding:"required,max=50"`
	Width        int    `json:"width" binding:"required,min=1"`
	Height       int    `json:"height" binding:"required,min=1"`
	FileSize     int64  `json:"file_size" binding:"required,min=1"`
	TagID        *int64 `json:"tag_id,omitempty"`
}

// WallpaperItem 壁纸信息
type WallpaperItem struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	ThumbnailURL  string     `json:"thumbnail_url,omitempty"`
	Alt           string     `json:"alt"`
	Type          string     `json:"type"`
	FileSize      int64      `json:"file_size"`
	Dimensions    string     `json:"dimensions"`
	DownloadCount int        `json:"download_count"`
	LikeCount     int        `json:"like_count"`
	FavoriteCount int        `json:"favorite_count"`
	Heat          int        `json:"heat"`
	Status        string     `json:"status"`
	Tags          []string   `json:"tags"`
	Author        *UserBrief `json:"author,omitempty"`
	CreatedAt     string     `json:"created_at"`
}

// WallpaperRelation 当前用户与壁纸的关系
type WallpaperRelation struct {
	Liked     bool `json:"liked"`
	Collected bool `json:"collected"`
}

// ToggleResponse 喜欢/收藏切换结果
type ToggleResponse struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// DownloadResponse 下载响应
type DownloadResponse struct {
	URL           string `json:"url"`
	DownloadCount int    `json:"download_count"`
}

// ModerateImageRequest 图片审核请求
type ModerateImageRequest struct {
	ImageURL string `json:"image_url"`
}

// ModerationResult 壁纸审核结果
type ModerationResult struct {
	WallpaperID int64  `json:"wallpaper_id"`
	Suggest     string `json:"suggest"`
	Status      string `json:"status"`
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
