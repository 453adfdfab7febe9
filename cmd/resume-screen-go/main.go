package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzerolog "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"resume-screen-go/internal/api/handler"
	"resume-screen-go/internal/api/router"
	"resume-screen-go/internal/config"
	"resume-screen-go/internal/logger"
	"resume-screen-go/internal/parser"
	"resume-screen-go/internal/processor"
	"resume-screen-go/internal/recommend"
	"resume-screen-go/internal/scorer"
	"resume-screen-go/internal/storage"
)

func main() {
	var (
		configPath   string
		address      string
		sampleConfig string
	)
	pflag.StringVar(&configPath, "config", "", "配置文件路径，留空时在常见位置查找")
	pflag.StringVar(&address, "address", "", "HTTP监听地址，覆盖配置文件")
	pflag.StringVar(&sampleConfig, "write-sample-config", "", "在指定路径生成示例配置文件后退出")
	pflag.Parse()

	if sampleConfig != "" {
		if err := config.CreateSampleConfig(sampleConfig); err != nil {
			fmt.Fprintf(os.Stderr, "生成示例配置失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("示例配置已写入 %s\n", sampleConfig)
		return
	}

	// 1. 加载配置文件
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置文件失败: %v\n", err)
		os.Exit(1)
	}
	if address != "" {
		cfg.Server.Address = address
	}

	// 2. 初始化日志系统
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	logger.Logger = logger.Logger.With().
		Str("app", "resume-screen-go").
		Logger()
	// Hertz框架日志走同一个zerolog实例
	hlog.SetLogger(hertzzerolog.From(logger.Logger))

	// 3. 初始化存储层
	ctx := context.Background()
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储层失败")
	}
	defer storageManager.Close()

	// 4. 组装筛选流水线组件
	service, recommender, err := initializeService(ctx, cfg, storageManager)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化筛选服务失败")
	}
	logger.Info().Msg("筛选服务初始化成功")

	resumeHandler := handler.NewResumeHandler(service, storageManager, recommender)
	analyticsHandler := handler.NewAnalyticsHandler(storageManager)

	// 5. 创建HTTP服务器并注册路由
	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
	)
	router.RegisterRoutes(h, resumeHandler, analyticsHandler)

	// 6. 启动HTTP服务器
	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器已启动")

	// 7. 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	// 8. 优雅关闭HTTP服务器
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}

	logger.Info().Msg("优雅退出完成")
}

// initializeService 构建筛选流水线：所有组件进程启动时创建一次，此后只读共享
func initializeService(ctx context.Context, cfg *config.Config, storageManager *storage.Storage) (*processor.ScreeningService, *recommend.Recommender, error) {
	if storageManager == nil || storageManager.Store == nil {
		return nil, nil, fmt.Errorf("存储层未初始化")
	}

	textExtractor, err := parser.NewEinoPDFTextExtractor(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化PDF提取器失败: %w", err)
	}

	recommender := recommend.NewRecommender()
	treeScorer := scorer.NewTreeScorer(cfg.Scorer.ModelPath)
	logger.Info().Str("scorer", treeScorer.Describe()).Msg("评分器就绪")

	service, err := processor.NewScreeningService(
		processor.WithTextExtractor(textExtractor),
		processor.WithFeatureExtractor(parser.NewFeatureExtractor()),
		processor.WithSentimentAnalyzer(parser.NewSentimentAnalyzer()),
		processor.WithRecommender(recommender),
		processor.WithScorer(treeScorer),
		processor.WithStorage(storageManager),
	)
	if err != nil {
		return nil, nil, err
	}

	return service, recommender, nil
}
