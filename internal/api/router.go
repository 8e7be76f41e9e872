package api

import (
	"net/url"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/qs3c/wallpaper_server/config"
	"github.com/qs3c/wallpaper_server/internal/api/handler"
	"github.com/qs3c/wallpaper_server/internal/api/middleware"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
)

type Router struct {
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	wallpaperHandler *handler.WallpaperHandler
	tagHandler       *handler.TagHandler
	postHandler      *handler.PostHandler
	commentHandler   *handler.CommentHandler
	topicHandler     *handler.TopicHandler
	qrcodeHandler    *handler.QRCodeHandler
	isAdmin          middleware.AdminChecker
	cfg              *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	wallpaperHandler *handler.WallpaperHandler,
	tagHandler *handler.TagHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	topicHandler *handler.TopicHandler,
	qrcodeHandler *handler.QRCodeHandler,
	isAdmin middleware.AdminChecker,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:      authHandler,
		userHandler:      userHandler,
		wallpaperHandler: wallpaperHandler,
		tagHandler:       tagHandler,
		postHandler:      postHandler,
		commentHandler:   commentHandler,
		topicHandler:     topicHandler,
		qrcodeHandler:    qrcodeHandler,
		isAdmin:          isAdmin,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	// 本地存储的文件直接由服务对外提供
	if r.cfg.Storage.Driver == "" || r.cfg.Storage.Driver == storage.DriverLocal {
		engine.Static(staticPath(r.cfg.Storage.BaseURL), r.cfg.Storage.BaseDir)
	}

	secret := r.cfg.JWT.Secret
	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口（可选认证）
		public := api.Group("")
		public.Use(middleware.OptionalAuth(secret))
		{
			public.GET("/users/top", r.userHandler.TopUsers)
			public.GET("/users/:id", r.userHandler.GetProfile)
			public.GET("/users/:id/follow-counts", r.userHandler.FollowCounts)
			public.GET("/users/:id/following/:authorId", r.userHandler.IsFollowing)
			public.GET("/users/:id/wallpapers", r.userHandler.Wallpapers)
			public.GET("/users/:id/likes", r.userHandler.Likes)
			public.GET("/users/:id/collects", r.userHandler.Collects)

			public.GET("/wallpapers", r.wallpaperHandler.List)
			public.GET("/wallpapers/hot", r.wallpaperHandler.Hot)
			public.GET("/wallpapers/sorted", r.wallpaperHandler.Sorted)
			public.GET("/wallpapers/search", r.wallpaperHandler.Search)
			public.GET("/wallpapers/tags/:name", r.wallpaperHandler.ByTag)
			public.GET("/wallpapers/:id", r.wallpaperHandler.Get)
			public.POST("/wallpapers/:id/download", r.wallpaperHandler.Download)

			public.GET("/tags", r.tagHandler.List)

			public.GET("/posts", r.postHandler.List)
			public.PUT("/posts/:id/view", r.postHandler.View)
			public.GET("/posts/:id/comments", r.commentHandler.List)
			public.GET("/comments/:id", r.commentHandler.Tree)

			public.GET("/topics", r.topicHandler.List)
			public.GET("/topics/hot", r.topicHandler.Hot)
			public.GET("/topics/:id", r.topicHandler.Get)
			public.GET("/topics/:id/posts", r.topicHandler.Posts)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.Me)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/avatar", r.userHandler.UploadAvatar)
				user.PUT("/background", r.userHandler.UpdateBackground)
			}
			authenticated.POST("/users/:id/follow", r.userHandler.Follow)
			authenticated.DELETE("/users/:id/follow", r.userHandler.Unfollow)

			// 壁纸
			wallpapers := authenticated.Group("/wallpapers")
			{
				wallpapers.POST("/upload", r.wallpaperHandler.Upload)
				wallpapers.POST("", r.wallpaperHandler.Save)
				wallpapers.GET("/:id/relation", r.wallpaperHandler.Relation)
				wallpapers.POST("/:id/like", r.wallpaperHandler.Like)
				wallpapers.POST("/:id/collect", r.wallpaperHandler.Collect)
				wallpapers.DELETE("/:id", r.wallpaperHandler.Delete)
			}
			authenticated.POST("/verify/moderate-image", r.wallpaperHandler.ModerateImage)

			// 帖子与评论
			posts := authenticated.Group("/posts")
			{
				posts.POST("", r.postHandler.Create)
				posts.PUT("/:id/like", r.postHandler.Like)
				posts.DELETE("/:id", r.postHandler.Delete)
				posts.POST("/:id/comments", r.commentHandler.Create)
			}
			authenticated.DELETE("/comments/:id", r.commentHandler.Delete)

			// 话题
			authenticated.POST("/topics", r.topicHandler.Create)
			authenticated.POST("/topics/bind", r.topicHandler.Bind)

			authenticated.POST("/qrcode", r.qrcodeHandler.Generate)

			// 管理员
			admin := authenticated.Group("")
			admin.Use(middleware.RequireAdmin(r.isAdmin))
			{
				admin.GET("/admin/users", r.userHandler.ListUsers)
				admin.GET("/admin/administrators", r.userHandler.ListAdmins)
				admin.POST("/tags", r.tagHandler.Create)
				admin.POST("/wallpapers/:id/moderate", r.wallpaperHandler.Moderate)
			}
		}
	}

	return engine
}

// staticPath 取 base_url 的路径部分作为静态文件路由前缀
func staticPath(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "/static"
	}
	return u.Path
}
