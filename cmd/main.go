package main

import (
	"os"

	"PharmaDesk/config"
	"PharmaDesk/database"
	"PharmaDesk/models"
	"PharmaDesk/repositories"
	"PharmaDesk/services"

	"github.com/rs/zerolog"
)

// main boots the record core: load configuration, open the datastore, load
// every collection in dependency order, verify wallet ledgers and write
// everything back in canonical form. The interactive menus sit on top of
// the services assembled here.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	store, err := database.Open(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open datastore")
	}

	medicineRepo := repositories.NewMedicineRepository(store, logger)
	patientRepo := repositories.NewPatientRepository(store, logger)
	doctorRepo := repositories.NewDoctorRepository(store, logger)
	pharmacistRepo := repositories.NewPharmacistRepository(store, logger)
	pharmacyRepo := repositories.NewPharmacyRepository(store, logger)
	orderRepo := repositories.NewOrderRepository(store, logger)
	prescriptionRepo := repositories.NewPrescriptionRepository(store, logger)

	// The catalog loads first; order and prescription line items resolve
	// against it.
	catalog, err := medicineRepo.LoadAll()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load medicines")
	}
	patients, err := patientRepo.LoadAll()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load patients")
	}
	doctors, err := doctorRepo.LoadAll()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load doctors")
	}
	pharmacists, err := pharmacistRepo.LoadAll()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load pharmacists")
	}
	pharmacies, err := pharmacyRepo.LoadAll()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load pharmacies")
	}
	orders, err := orderRepo.LoadAll(catalog)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load orders")
	}
	prescriptions, err := prescriptionRepo.LoadAll(catalog)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load prescriptions")
	}

	wallets := services.NewWalletService(logger)
	orderService := services.NewOrderService(logger, wallets, catalog, orders)
	prescriptionService := services.NewPrescriptionService(logger, catalog, prescriptions, cfg.PrescriptionValidityDays)

	var admins []models.Admin
	if cfg.AdminUsername != "" && cfg.AdminPasswordHash != "" {
		admins = append(admins, models.Admin{ID: 1, Name: "Administrator", Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash})
	}
	var auth *services.AuthService
	if cfg.SymmetricKey != "" {
		creds := services.BuildDirectory(patients, doctors, pharmacists, admins)
		auth = services.NewAuthService(logger, []byte(cfg.SymmetricKey), creds, cfg.MaxLoginAttempts, cfg.LockoutWindow)
		logger.Info().Int("credentials", len(creds)).Msg("Session directory ready")
	} else {
		logger.Warn().Msg("No symmetric key configured; sessions disabled")
	}

	mismatches := 0
	for _, p := range patients {
		if err := wallets.Verify(p); err != nil {
			logger.Error().Err(err).Msg("Ledger integrity error")
			mismatches++
		}
	}

	logger.Info().
		Int("medicines", len(catalog)).
		Int("patients", len(patients)).
		Int("doctors", len(doctors)).
		Int("pharmacists", len(pharmacists)).
		Int("pharmacies", len(pharmacies)).
		Int("orders", len(orderService.Orders())).
		Int("prescriptions", len(prescriptionService.Prescriptions())).
		Int("ledger_mismatches", mismatches).
		Bool("sessions_enabled", auth != nil).
		Msg("Collections loaded")

	// Write everything back so legacy-format records are upgraded and files
	// exist for the first run.
	if err := medicineRepo.SaveAll(catalog); err != nil {
		logger.Fatal().Err(err).Msg("Failed to save medicines")
	}
	if err := patientRepo.SaveAll(patients); err != nil {
		logger.Fatal().Err(err).Msg("Failed to save patients")
	}
	if err := doctorRepo.SaveAll(doctors); err != nil {
		logger.Fatal().Err(err).Msg("Failed to save doctors")
	}
	if err := pharmacistRepo.SaveAll(pharmacists); err != nil {
		logger.Fatal().Err(err).Msg("Failed to save pharmacists")
	}
	if err := pharmacyRepo.SaveAll(pharmacies); err != nil {
		logger.Fatal().Err(err).Msg("Failed to save pharmacies")
	}
	if err := orderRepo.SaveAll(orderService.Orders()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to save orders")
	}
	if err := prescriptionRepo.SaveAll(prescriptionService.Prescriptions()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to save prescriptions")
	}
	logger.Info().Str("dir", store.Dir()).Msg("Datastore checkpoint complete")
}
