package database

import (
	"fmt"

	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password given to every seeded account.
const DemoPassword = "changeme"

func seedMenu() []models.MenuItem {
	item := func(name, desc, price string, cat models.Category, image string) models.MenuItem {
		return models.MenuItem{
			Name:        name,
			Description: desc,
			Price:       decimal.RequireFromString(price),
			Category:    cat,
			ImageID:     image,
		}
	}
	return []models.MenuItem{
		item("Cappuccino", "Classic espresso with steamed milk foam.", "3.50", models.CategoryDrink, "cappuccino"),
		item("Espresso", "A strong shot of concentrated coffee.", "2.50", models.CategoryDrink, "espresso"),
		item("Iced Latte", "Chilled espresso with milk over ice.", "4.00", models.CategoryDrink, "iced-latte"),
		item("Fresh Orange Juice", "Freshly squeezed orange juice.", "4.50", models.CategoryDrink, "fresh-juice"),
		item("Butter Croissant", "Flaky and buttery, baked fresh.", "2.75", models.CategoryFood, "croissant"),
		item("Spaghetti Aglio e Olio", "Spaghetti tossed with sautéed garlic in olive oil, red pepper flakes and fresh parsley.", "12.50", models.CategoryFood, "pasta-aglio-e-olio"),
		item("Club Sandwich", "Triple-decker with chicken, bacon, and lettuce.", "10.50", models.CategoryFood, "club-sandwich"),
		item("Margherita Pizza", "Light tomato sauce, fresh mozzarella and basil on a crisp crust.", "14.00", models.CategoryFood, "margherita-pizza"),
		item("Chocolate Lava Cake", "Warm chocolate cake with a gooey center.", "6.50", models.CategoryDessert, "chocolate-cake"),
		item("NY Cheesecake", "Creamy cheesecake with a graham cracker crust.", "5.75", models.CategoryDessert, "cheesecake"),
	}
}

func seedUsers() []models.User {
	return []models.User{
		{Name: "Admin User", Role: models.RoleAdmin, Phone: "+11234567890", Email: "admin@shegacafe.com"},
		{Name: "Alex", Role: models.RoleWaiter, Phone: "+12345678901", Email: "waiter@shegacafe.com"},
		{Name: "Ben", Role: models.RoleChef, Phone: "+13456789012", Email: "chef@shegacafe.com"},
		{Name: "John Doe", Role: models.RoleCustomer, Phone: "+14567890123", Email: "customer@shegacafe.com"},
	}
}

// Seed fills the menu and demo accounts when their tables are empty.
// Orders are never seeded.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count menu items: %w", err)
		}
		if count == 0 {
			menu := seedMenu()
			if err := tx.Create(&menu).Error; err != nil {
				return fmt.Errorf("seed menu: %w", err)
			}
			utils.InfoLogger.Infof("seeded %d menu items", len(menu))
		}

		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count == 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash demo password: %w", err)
			}
			users := seedUsers()
			for i := range users {
				users[i].PasswordHash = string(hash)
			}
			if err := tx.Create(&users).Error; err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
			utils.InfoLogger.Infof("seeded %d users", len(users))
		}
		return nil
	})
}
