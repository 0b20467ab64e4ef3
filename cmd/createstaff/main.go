// Command createstaff 创建一个可以访问 /api/admin/ 的运营账号。
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/bootstrap"
	gormpersistence "github.com/jonielmendes/AlugaLarCorrente/internal/infra/persistence/gorm"
	"github.com/jonielmendes/AlugaLarCorrente/internal/infra/setup"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

func main() {
	username := flag.String("username", "", "staff username")
	email := flag.String("email", "", "staff email")
	flag.Parse()

	// 密码只从环境变量读取，避免出现在 shell 历史中
	password := os.Getenv("STAFF_PASSWORD")

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := bootstrap.NewLogger(cfg)

	db, err := setup.InitDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	userRepo := gormpersistence.NewGormUserRepository(db)
	adminService := service.NewAdminService(gormpersistence.NewGormListingRepository(db), userRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	user, err := adminService.CreateStaff(ctx, *username, *email, password)
	if err != nil {
		log.Fatalf("Failed to create staff user: %v", err)
	}
	log.WithField("user_id", user.ID).Infof("Staff user '%s' created", user.Username)
}
