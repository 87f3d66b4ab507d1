package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/peartree/landing/internal/config"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/db"
	"github.com/peartree/landing/internal/service"
	"github.com/peartree/landing/web"
)

const (
	demoUsername   = "admin"
	demoPassword   = "admin123"
	demoHours      = 48
	demoVisitors   = 120
	demoMaxPerHour = 12
)

// 演示数据生成器：管理员账号、内容导入以及最近两天的模拟访问
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置加载失败:", err)
	}
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	createDemoUser()

	catalog, err := content.LoadCatalog(web.ContentFrom(cfg.ContentDir))
	if err != nil {
		log.Fatal("内容加载失败:", err)
	}
	if err := importDemoPages(catalog); err != nil {
		log.Fatal("内容导入失败:", err)
	}

	views, err := createDemoTraffic(time.Now().UTC(), rand.New(rand.NewPCG(2935, 14)))
	if err != nil {
		log.Fatal("生成访问数据失败:", err)
	}

	fmt.Println("演示数据生成完成！")
	fmt.Printf("用户: %s (密码: %s)\n", demoUsername, demoPassword)
	fmt.Printf("页面: %d 个落地页\n", len(catalog.Pages))
	fmt.Printf("访问: 最近 %d 小时共 %d 次浏览\n", demoHours, views)
}

func createDemoUser() {
	created, err := db.EnsureUser(db.DB, demoUsername, demoPassword)
	if err != nil {
		log.Printf("创建用户失败: %v", err)
		return
	}
	if !created {
		fmt.Println("用户已存在，跳过创建")
		return
	}
	fmt.Println("✅ 管理员用户创建完成")
}

func importDemoPages(catalog *content.Catalog) error {
	result, err := service.NewPageService(db.DB).Import(catalog)
	if err != nil {
		return err
	}
	fmt.Printf("✅ 落地页导入完成 (新建 %d, 更新 %d, 未变 %d)\n", result.Created, result.Updated, result.Unchanged)
	return nil
}

// createDemoTraffic 为已发布页面生成最近 demoHours 小时的浏览记录，返回总浏览次数。
// 访客从固定的 ID 池中抽取，保证同一访客会重复访问以体现 UV 去重。
func createDemoTraffic(now time.Time, rng *rand.Rand) (int, error) {
	var pages []db.LandingPage
	if err := db.DB.Where("published = ?", true).Order("slug").Find(&pages).Error; err != nil {
		return 0, err
	}
	if len(pages) == 0 {
		return 0, nil
	}

	visitors := make([]string, demoVisitors)
	for i := range visitors {
		visitors[i] = uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("demo-visitor-%d", i))).String()
	}

	analytics := service.NewAnalyticsService(db.DB)
	start := now.Truncate(time.Hour).Add(-time.Duration(demoHours-1) * time.Hour)
	total := 0
	for h := 0; h < demoHours; h++ {
		hour := start.Add(time.Duration(h) * time.Hour)
		for n := rng.IntN(demoMaxPerHour + 1); n > 0; n-- {
			page := pages[rng.IntN(len(pages))]
			visitor := visitors[rng.IntN(len(visitors))]
			at := hour.Add(time.Duration(rng.IntN(3600)) * time.Second)
			if _, err := analytics.RecordPageView(page.ID, visitor, at); err != nil {
				return total, err
			}
			total++
		}
	}

	fmt.Println("✅ 模拟访问数据生成完成")
	return total, nil
}
