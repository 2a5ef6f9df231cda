package main

import (
	"context"
	"log"
	"os"

	"servistakip/internal/config"
	"servistakip/internal/database"
	"servistakip/internal/domain"
	"servistakip/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM service_messages")
	db.Exec("DELETE FROM service_parts")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM device_parts")
	db.Exec("DELETE FROM devices")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	partRepo := repository.NewDevicePartRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	quoteRepo := repository.NewServicePartRepository(db)
	messageRepo := repository.NewServiceMessageRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	adminHash, _ := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	admin := &domain.User{
		Name:         "Servis Yöneticisi",
		Email:        "admin@servistakip.com",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal("admin create failed:", err)
	}
	log.Printf("Admin created: %s / %s", admin.Email, adminPassword)

	techHash, _ := bcrypt.GenerateFromPassword([]byte("teknisyen123"), bcrypt.DefaultCost)
	technician := &domain.User{
		Name:         "Mehmet Usta",
		Email:        "mehmet@servistakip.com",
		PasswordHash: string(techHash),
		Role:         domain.RoleTechnician,
	}
	if err := userRepo.Create(ctx, technician); err != nil {
		log.Fatal("technician create failed:", err)
	}
	log.Printf("Technician created: %s / teknisyen123", technician.Email)

	// ================== CUSTOMERS ==================
	log.Println("Creating customers...")

	customer1 := &domain.Customer{
		Name:    "Ayşe Yılmaz",
		Phone:   domain.NormalizePhone("0532 111 22 33"),
		Email:   "ayse@example.com",
		Address: "Atatürk Cad. No:12 Kadıköy, İstanbul",
	}
	if err := customerRepo.Create(ctx, customer1); err != nil {
		log.Fatal("customer create failed:", err)
	}

	customer2 := &domain.Customer{
		Name:  "Ali Demir",
		Phone: domain.NormalizePhone("0543 444 55 66"),
	}
	if err := customerRepo.Create(ctx, customer2); err != nil {
		log.Fatal("customer create failed:", err)
	}

	// ================== DEVICES ==================
	log.Println("Creating devices...")

	phone13 := &domain.Device{
		CustomerID:   customer1.ID,
		Type:         "Telefon",
		Brand:        "Apple",
		Model:        "iPhone 13",
		SerialNumber: "SN-IP13-0042",
	}
	if err := deviceRepo.Create(ctx, phone13); err != nil {
		log.Fatal("device create failed:", err)
	}

	laptop := &domain.Device{
		CustomerID: customer2.ID,
		Type:       "Laptop",
		Brand:      "Lenovo",
		Model:      "ThinkPad T14",
	}
	if err := deviceRepo.Create(ctx, laptop); err != nil {
		log.Fatal("device create failed:", err)
	}

	// ================== DEVICE PARTS ==================
	log.Println("Creating device parts...")

	screen := &domain.DevicePart{
		DeviceID: phone13.ID,
		Name:     "Ekran",
		Category: "Ekran",
		Price:    4500,
	}
	battery := &domain.DevicePart{
		DeviceID: phone13.ID,
		Name:     "Batarya",
		Category: "Batarya",
		Price:    1200,
	}
	// no category, lands under Diğer
	backGlass := &domain.DevicePart{
		DeviceID: phone13.ID,
		Name:     "Arka Cam",
		Price:    900,
	}
	keyboard := &domain.DevicePart{
		DeviceID: laptop.ID,
		Name:     "Klavye",
		Category: "Klavye",
		Price:    800,
	}
	for _, p := range []*domain.DevicePart{screen, battery, backGlass, keyboard} {
		if err := partRepo.Create(ctx, p); err != nil {
			log.Fatal("part create failed:", err)
		}
	}

	// ================== SERVICES ==================
	log.Println("Creating services...")

	techID := technician.ID
	labor := 750.0
	ticket1 := &domain.Service{
		CustomerID:   customer1.ID,
		DeviceID:     phone13.ID,
		TechnicianID: &techID,
		Problem:      "Ekran kırık, batarya şişmiş",
		Diagnosis:    "Ekran ve batarya değişimi gerekiyor",
		Status:       domain.StatusInReview,
		Price:        &labor,
	}
	if err := serviceRepo.Create(ctx, ticket1); err != nil {
		log.Fatal("service create failed:", err)
	}

	ticket2 := &domain.Service{
		CustomerID:   customer2.ID,
		DeviceID:     laptop.ID,
		TechnicianID: &techID,
		Problem:      "Klavyede bazı tuşlar çalışmıyor",
		Status:       domain.StatusPending,
	}
	if err := serviceRepo.Create(ctx, ticket2); err != nil {
		log.Fatal("service create failed:", err)
	}

	// ================== QUOTE LINES ==================
	log.Println("Creating quote lines...")

	for _, line := range []*domain.ServicePart{
		{ServiceID: ticket1.ID, PartID: screen.ID, Quantity: 1, Price: screen.Price},
		{ServiceID: ticket1.ID, PartID: battery.ID, Quantity: 1, Price: battery.Price},
	} {
		if err := quoteRepo.Create(ctx, line); err != nil {
			log.Fatal("quote line create failed:", err)
		}
	}

	// ================== MESSAGES ==================
	log.Println("Creating messages...")

	staffID := technician.ID
	messages := []*domain.ServiceMessage{
		{ServiceID: ticket1.ID, Message: "Merhaba, telefonum ne durumda?", IsFromCustomer: true},
		{ServiceID: ticket1.ID, UserID: &staffID, Message: "Merhaba, cihazınız inceleniyor. Ekran ve batarya değişimi gerekiyor.", IsFromCustomer: false},
		{ServiceID: ticket1.ID, Message: "Tamam, onaylıyorum.", IsFromCustomer: true},
	}
	for _, m := range messages {
		if err := messageRepo.Create(ctx, m); err != nil {
			log.Fatal("message create failed:", err)
		}
	}

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Printf("  Admin: %s / %s", admin.Email, adminPassword)
	log.Println("  Technician: mehmet@servistakip.com / teknisyen123")
	log.Println("  Status lookup phone: 05321112233 (any formatting works)")
}
