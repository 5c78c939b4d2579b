package main

import (
	"log"

	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/config"
	"github.com/qs3c/jobtrack_go_server/internal/database"
	"github.com/qs3c/jobtrack_go_server/internal/model"
)

// 历史数据回填：把每列的 position 重写为按 (position, id) 排序后的 0..n-1。
// 幂等，可重复执行。
func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	total := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, status := range model.AllStatuses {
			var apps []model.Application
			if err := tx.Where("status = ?", status).
				Order("position ASC, id ASC").
				Find(&apps).Error; err != nil {
				return err
			}

			fixed := 0
			for i := range apps {
				if apps[i].Position == i {
					continue
				}
				if err := tx.Model(&model.Application{}).
					Where("id = ?", apps[i].ID).
					Update("position", i).Error; err != nil {
					return err
				}
				fixed++
			}

			log.Printf("%s: %d applications, %d positions fixed", status, len(apps), fixed)
			total += fixed
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Backfill failed: %v", err)
	}

	log.Printf("Backfill done, %d rows updated", total)
}
