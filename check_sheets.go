package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"orders-backend/internal/app/ds"
	"orders-backend/internal/app/repository"
	"orders-backend/internal/app/sheets"
)

func main() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	budgetID := os.Getenv("BUDGET_SHEET_ID")
	if budgetID == "" {
		log.Fatal("BUDGET_SHEET_ID is empty")
	}

	store, err := sheets.NewExcelStore(dataDir)
	if err != nil {
		log.Fatal("Failed to open store:", err)
	}
	repo := repository.New(store, os.Getenv("MASTER_SHEET_ID"))

	orders, err := repo.StatusSummary(context.Background(), budgetID)
	if err != nil {
		log.Fatal("Failed to read orders:", err)
	}

	fmt.Println("Orders in workbook:")
	for _, o := range orders {
		marker := ""
		if o.Status == ds.StatusWaiting {
			marker = " <- waiting"
		}
		fmt.Printf("Serial: %s, Branch: %s, Status: %s, Total: %s, Lines: %d%s\n",
			o.Serial, o.BranchName, o.Status, o.Total.String(), len(o.Items), marker)
	}
}
