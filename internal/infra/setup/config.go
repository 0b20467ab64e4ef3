package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 支持的数据库驱动
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DBOptions 描述数据库连接参数
type DBOptions struct {
	Driver   string
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	// Debug 为 true 时打印 SQL
	Debug bool
}

// DSN 按驱动构建连接字符串
func (o DBOptions) DSN() (string, error) {
	if o.User == "" {
		return "", fmt.Errorf("database user must be set")
	}
	host, port := o.Host, o.Port
	if host == "" {
		host = "127.0.0.1"
	}
	switch o.Driver {
	case DriverMySQL, "":
		if port == "" {
			port = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			o.User, o.Password, host, port, o.Name), nil
	case DriverPostgres:
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			host, o.User, o.Password, o.Name, port), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", o.Driver)
	}
}

// dialector 返回驱动对应的 GORM Dialector
func (o DBOptions) dialector(dsn string) gorm.Dialector {
	if o.Driver == DriverPostgres {
		return postgres.Open(dsn)
	}
	return mysql.Open(dsn)
}

// InitDB 初始化数据库连接并配置连接池
func InitDB(opts DBOptions) (*gorm.DB, error) {
	dsn, err := opts.DSN()
	if err != nil {
		return nil, fmt.Errorf("build dsn: %w", err)
	}

	gormCfg := &gorm.Config{TranslateError: true}
	if opts.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(opts.dialector(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logrus.WithField("driver", opts.Driver).Info("Database connected")
	return db, nil
}

// InitRedis 初始化 Redis 连接并检查连通性
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 5,
		MaxConnAge:   30 * time.Minute,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	logrus.Info("Redis connected")
	return client, nil
}
