package main

import (
	"fmt"
	"log"
	"time"

	"angoconnect/internal/database"
	"angoconnect/internal/domain"
	"angoconnect/internal/modules/auth"
	"angoconnect/internal/modules/notification"
	"angoconnect/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	db, err := database.Connect("angoconnect.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	models := repository.Models()
	models = append(models, notification.Model(), auth.RefreshTokenModel())
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM proposals")
	db.Exec("DELETE FROM service_requests")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM professionals")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := createUser(db, "admin@angoconnect.ao", string(adminHash), domain.RoleAdmin, "Administrador", "")
	log.Println("Admin created: admin@angoconnect.ao / admin123")

	clients := make([]int64, 0, 3)
	clientNames := []string{"Ana Domingos", "Carlos Neto", "Maria Van-Dúnem"}
	for i, name := range clientNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		id := createUser(db,
			fmt.Sprintf("cliente%d@example.ao", i+1),
			string(hash),
			domain.RoleClient,
			name,
			fmt.Sprintf("+2449230001%02d", i+1),
		)
		clients = append(clients, id)
	}

	log.Println("Creating professionals...")

	type proSeed struct {
		name     string
		category string
		city     string
		bio      string
		price    float64
		verified bool
	}
	pros := []proSeed{
		{"João Baptista", "eletricista", "Luanda", "Eletricista com 10 anos de experiência", 15000, true},
		{"Pedro Cassoma", "canalizador", "Luanda", "Canalizações residenciais e comerciais", 12000, true},
		{"Teresa Quintas", "pintor", "Benguela", "Pintura de interiores e exteriores", 9000, false},
	}

	professionalIDs := make([]int64, 0, len(pros))
	for i, p := range pros {
		hash, _ := bcrypt.GenerateFromPassword([]byte("pro123"), bcrypt.DefaultCost)
		status := domain.VerificationPending
		if p.verified {
			status = domain.VerificationVerified
		}
		userID := createUser(db,
			fmt.Sprintf("pro%d@example.ao", i+1),
			string(hash),
			domain.RoleProfessional,
			p.name,
			fmt.Sprintf("+2449240002%02d", i+1),
		)
		db.Table("users").Where("id = ?", userID).Update("verification_status", string(status))

		profile := map[string]any{
			"user_id":    userID,
			"category":   p.category,
			"bio":        p.bio,
			"city":       p.city,
			"price_hint": p.price,
			"created_at": time.Now(),
		}
		if p.verified {
			profile["verified_at"] = time.Now()
			profile["verified_by"] = admin
		}
		db.Table("professionals").Create(profile)
		professionalIDs = append(professionalIDs, userID)
	}

	log.Println("Creating service requests...")

	requests := []map[string]any{
		{
			"client_id":   clients[0],
			"title":       "Instalação elétrica de apartamento",
			"description": "Instalação completa num T3 no Kilamba",
			"category":    "eletricista",
			"location":    "Luanda",
			"budget":      80000.0,
			"urgency":     "alta",
			"status":      string(domain.RequestPending),
			"created_at":  time.Now(),
			"updated_at":  time.Now(),
		},
		{
			"client_id":   clients[1],
			"title":       "Reparação de canalização",
			"description": "Fuga de água na cozinha",
			"category":    "canalizador",
			"location":    "Luanda",
			"budget":      25000.0,
			"urgency":     "media",
			"status":      string(domain.RequestPending),
			"created_at":  time.Now(),
			"updated_at":  time.Now(),
		},
	}
	for _, r := range requests {
		db.Table("service_requests").Create(r)
	}

	log.Println("Seed complete")
}

func createUser(db *gorm.DB, email, passwordHash string, role domain.UserRole, name, phone string) int64 {
	row := map[string]any{
		"email":         email,
		"password_hash": passwordHash,
		"role":          string(role),
		"name":          name,
		"created_at":    time.Now(),
		"updated_at":    time.Now(),
	}
	if phone != "" {
		row["phone"] = phone
	}
	db.Table("users").Create(row)

	var id int64
	db.Table("users").Where("email = ?", email).Select("id").Scan(&id)
	return id
}
