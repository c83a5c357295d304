package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"fitlink-backend/internal/config"
	"fitlink-backend/internal/db"
	"fitlink-backend/internal/model"
)

const demoUID = "demo-user"

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	if err := gdb.AutoMigrate(
		&model.Post{},
		&model.Challenge{},
		&model.Event{},
		&model.Place{},
		&model.Listing{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	canSeed, err := shouldSeed(gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("posts already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		for _, p := range seedPosts() {
			p := p
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
		}
		for _, c := range seedChallenges() {
			c := c
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("seed challenge: %w", err)
			}
		}
		for _, e := range seedEvents() {
			e := e
			if err := tx.Create(&e).Error; err != nil {
				return fmt.Errorf("seed event: %w", err)
			}
		}
		for _, pl := range seedPlaces() {
			pl := pl
			if err := tx.Create(&pl).Error; err != nil {
				return fmt.Errorf("seed place: %w", err)
			}
		}
		for _, l := range seedListings() {
			l := l
			if err := tx.Create(&l).Error; err != nil {
				return fmt.Errorf("seed listing: %w", err)
			}
		}
		return nil
	})
}

func shouldSeed(gdb *gorm.DB) (bool, error) {
	if os.Getenv("FORCE_SEED") == "true" {
		return true, nil
	}
	var count int64
	if err := gdb.Model(&model.Post{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count posts: %w", err)
	}
	return count == 0, nil
}

func seedPosts() []model.Post {
	return []model.Post{
		{AuthorUID: demoUID, Body: "Primera carrera de la semana: 5 km en 28 minutos."},
		{AuthorUID: demoUID, Body: "Rutina de fuerza completada. Mañana toca descanso activo."},
		{AuthorUID: demoUID, Body: "¿Alguien para entrenar en el parque el sábado?"},
	}
}

func seedChallenges() []model.Challenge {
	starts := time.Now().Truncate(time.Hour)
	ends := starts.AddDate(0, 0, 30)
	return []model.Challenge{
		{CreatorUID: demoUID, Title: "Reto 10k pasos", Description: "10.000 pasos diarios durante 30 días", Category: "cardio", StartsAt: &starts, EndsAt: &ends},
		{CreatorUID: demoUID, Title: "Reto plancha", Description: "Suma un minuto de plancha cada día", Category: "fuerza", StartsAt: &starts, EndsAt: &ends},
	}
}

func seedEvents() []model.Event {
	starts := time.Now().AddDate(0, 0, 7)
	return []model.Event{
		{CreatorUID: demoUID, Title: "Carrera popular 5K", Description: "Carrera abierta para todos los niveles", Location: "Parque Central", StartsAt: &starts},
		{CreatorUID: demoUID, Title: "Yoga al aire libre", Description: "Sesión gratuita de yoga matinal", Location: "Plaza Mayor", StartsAt: &starts},
	}
}

func seedPlaces() []model.Place {
	return []model.Place{
		{CreatedByUID: demoUID, Name: "Gimnasio Centro", Category: "gym", Address: "Calle Mayor 12", Lat: 40.4168, Lng: -3.7038},
		{CreatedByUID: demoUID, Name: "Pista de atletismo municipal", Category: "track", Address: "Av. del Deporte 3", Lat: 40.4203, Lng: -3.6986},
		{CreatedByUID: demoUID, Name: "Parque Central", Category: "park", Address: "Paseo del Parque s/n", Lat: 40.4152, Lng: -3.7123},
	}
}

func seedListings() []model.Listing {
	return []model.Listing{
		{SellerUID: demoUID, Title: "Mancuernas 10 kg (par)", Description: "Poco uso, recogida en mano", Price: 35, Status: model.ListingStatusActive},
		{SellerUID: demoUID, Title: "Esterilla de yoga", Description: "Antideslizante, 6 mm", Price: 12, Status: model.ListingStatusActive},
	}
}
