package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"crm_legal_go/config"
	"crm_legal_go/db"
	"crm_legal_go/logger"
	"crm_legal_go/models"
	"crm_legal_go/services"
)

// prompt shows the current value and returns nil when the answer is empty,
// so pressing enter keeps what is stored
func prompt(reader *bufio.Reader, label, current string) *string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil
	}
	return &answer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	database, err := db.Open(cfg.DBPath, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := services.NewStore(database, logger.NewNop())
	current, err := store.GetProfile()
	if err != nil {
		log.Fatalf("Failed to read profile: %v", err)
	}
	if current == nil {
		current = &models.UserProfile{}
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Datos del estudio ===")
	fmt.Println("(Enter conserva el valor actual)")
	fmt.Println()

	update := models.ProfileUpdate{
		AttorneyName:             prompt(reader, "Nombre del abogado", current.AttorneyName),
		NationalRegistration:     prompt(reader, "Matrícula Nación", current.NationalRegistration),
		ProvincialRegistration:   prompt(reader, "Matrícula PBA", current.ProvincialRegistration),
		FederalRegistration:      prompt(reader, "Matrícula Federal", current.FederalRegistration),
		CityProceduralAddress:    prompt(reader, "Domicilio procesal CABA", current.CityProceduralAddress),
		NotificationZone:         prompt(reader, "Zona de notificación", current.NotificationZone),
		ProvincialProceduralAddr: prompt(reader, "Domicilio procesal PBA", current.ProvincialProceduralAddr),
		ProvincialElectronicAddr: prompt(reader, "Domicilio electrónico PBA", current.ProvincialElectronicAddr),
		OfficePhone:              prompt(reader, "Teléfono del estudio", current.OfficePhone),
		OfficeEmail:              prompt(reader, "Email del estudio", current.OfficeEmail),
		TaxID:                    prompt(reader, "CUIT", current.TaxID),
		PensionFileNumber:        prompt(reader, "Legajo previsional", current.PensionFileNumber),
		Other:                    prompt(reader, "Otros datos", current.Other),
	}

	saved, err := store.SaveProfile(update)
	if err != nil {
		log.Fatalf("Failed to save profile: %v", err)
	}

	fmt.Println()
	if !saved {
		fmt.Println("Sin cambios.")
		return
	}
	fmt.Println("✓ Perfil guardado")
}
