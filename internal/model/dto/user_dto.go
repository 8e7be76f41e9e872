package dto

// UserBrief 嵌入其他资源中的用户信息
type UserBrief struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname,omitempty"`
	AvatarURL string `json:"avatar_url"`
}

// UserProfile 用户主页信息
type UserProfile struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Nickname       string `json:"nickname"`
	Gender         string `json:"gender"`
	Birth          string `json:"birth,omitempty"`
	Country        string `json:"country"`
	Province       string `json:"province"`
	City           string `json:"city"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	AvatarURL      string `json:"avatar_url"`
	Description    string `json:"description"`
	BackgroundURL  string `json:"background_url"`
	FollowersCount int    `json:"followers_count"`
	FollowCount    int    `json:"follow_count"`
	LikeCount      int    `json:"like_count"`
	FavoriteCount  int    `json:"favorite_count"`
	PostCount      int64  `json:"post_count"`
	WallpaperCount int64  `json:"wallpaper_count"`
	LikedCount     int64  `json:"liked_count"`
	CollectedCount int64  `json:"collected_count"`
	LastLoginAt    string `json:"last_login_at,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// UpdateProfileRequest 更新用户信息请求，nil 字段不修改
type UpdateProfileRequest struct {
	Nickname    *string `json:"nickname,omitempty" binding:"omitempty,max=100"`
	Gender      *string `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Birth       *string `json:"birth,omitempty"`
	Country     *string `json:"country,omitempty" binding:"omitempty,max=100"`
	Province    *string `json:"province,omitempty" binding:"omitempty,max=100"`
	City        *string `json:"city,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
}

// UpdateBackgroundRequest 更新主页背景
type UpdateBackgroundRequest struct {
	BackgroundImageURL string `json:"background_image_url"`
}

// AvatarResponse 头像上传响应
type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

// FollowCounts 关注/粉丝数
type FollowCounts struct {
	FollowersCount int `json:"followers_count"`
	FollowCount    int `json:"follow_count"`
}

// FollowStatus 关注状态
type FollowStatus struct {
	Following bool `json:"following"`
}

// TopUser 发帖排行
type TopUser struct {
	UserBrief
	PostCount int64 `json:"post_count"`
}
