package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"crisiscorner/internal/app/config"
	"crisiscorner/internal/app/ds"
	"crisiscorner/internal/app/repository"
	"crisiscorner/internal/app/service"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	defer cancel()

	store, err := repository.New(ctx, cfg.Store)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer store.Close(context.Background())

	query := service.NewQueryService(logrus.StandardLogger(), store, cfg.PageSize)

	counts, err := query.StatusCounts(ctx)
	if err != nil {
		log.Fatal("Failed to count requests:", err)
	}

	fmt.Printf("Requests in database %q:\n", store.Name())
	for _, st := range ds.Statuses {
		fmt.Printf("  %-10s %d\n", st, counts.Get(st))
	}
	fmt.Printf("  %-10s %d\n", "total", counts.Total)

	page, err := query.List(ctx, service.ListInput{Page: 1})
	if err != nil {
		log.Fatal("Failed to get requests:", err)
	}

	fmt.Println("Newest requests:")
	for _, r := range page.Records {
		edited := "NULL"
		if r.LastEditedDate != nil {
			edited = r.LastEditedDate.Format(time.RFC3339)
		}
		fmt.Printf("ID: %s, Requestor: %s, Item: %s, Status: %s, Edited: %s\n",
			r.ID, r.RequestorName, r.ItemRequested, r.Status, edited)
	}
}
