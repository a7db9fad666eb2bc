package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yungbote/servicehub-backend/internal/app"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/services"
)

type idList []int64

func (l *idList) String() string {
	parts := make([]string, 0, len(*l))
	for _, id := range *l {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func (l *idList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid service id %q", v)
	}
	*l = append(*l, id)
	return nil
}

func main() {
	var ids idList
	var dryRun bool
	flag.Var(&ids, "service", "service id to recompute (repeatable)")
	flag.BoolVar(&dryRun, "dry-run", false, "print drifted aggregates without writing")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}

	if len(ids) == 0 {
		all, err := application.Repos.Service.ListIDs(dbc)
		if err != nil {
			fmt.Printf("list services: %v\n", err)
			os.Exit(1)
		}
		ids = all
	}

	drifted, failed := 0, 0
	for _, id := range ids {
		svc, err := application.Repos.Service.GetByID(dbc, id)
		if err != nil || svc == nil {
			fmt.Printf("service %d: not found (%v)\n", id, err)
			failed++
			continue
		}
		reviews, err := application.Repos.Review.GetByServiceID(dbc, id)
		if err != nil {
			fmt.Printf("service %d: load reviews: %v\n", id, err)
			failed++
			continue
		}
		want := services.ComputeAggregate(reviews)
		if want.Rating == svc.Rating && want.ReviewCount == svc.ReviewCount {
			continue
		}
		drifted++
		fmt.Printf("service %d: rating %.1f -> %.1f, review_count %d -> %d\n",
			id, svc.Rating, want.Rating, svc.ReviewCount, want.ReviewCount)
		if dryRun {
			continue
		}
		if _, err := application.Services.Ratings.RecomputeService(dbc, id); err != nil {
			fmt.Printf("service %d: recompute: %v\n", id, err)
			failed++
		}
	}

	fmt.Printf("checked=%d drifted=%d failed=%d dry_run=%v\n", len(ids), drifted, failed, dryRun)
	if failed > 0 {
		application.Close()
		os.Exit(1)
	}
}
