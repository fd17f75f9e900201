package counter

import (
	"context"
	"strconv"

	"github.com/complymate/doorguard/internal/pkg/cache"
)

const (
	importRunsKey      = "tenant:counters:import_runs"
	importRowsKey      = "tenant:counters:import_rows"
	exportDownloadsKey = "tenant:counters:export_downloads"
)

// AddImportRun increments the import run counter for a tenant in Redis
func AddImportRun(tenantID uint) error {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(tenantID), 10)
	return cache.GetClient().HIncrBy(ctx, importRunsKey, field, 1).Err()
}

// AddImportRows adds the number of rows created by an import run for a tenant
func AddImportRows(tenantID uint, rows int64) error {
	if rows <= 0 {
		return nil
	}
	ctx := context.Background()
	field := strconv.FormatUint(uint64(tenantID), 10)
	return cache.GetClient().HIncrBy(ctx, importRowsKey, field, rows).Err()
}

// AddExportDownload increments the export download counter for a tenant in Redis
func AddExportDownload(tenantID uint) error {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(tenantID), 10)
	return cache.GetClient().HIncrBy(ctx, exportDownloadsKey, field, 1).Err()
}

// Totals reads the accumulated counters for a tenant. Missing fields read as zero.
func Totals(tenantID uint) (importRuns, importRows, exportDownloads int64) {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(tenantID), 10)
	importRuns = readField(ctx, importRunsKey, field)
	importRows = readField(ctx, importRowsKey, field)
	exportDownloads = readField(ctx, exportDownloadsKey, field)
	return
}

func readField(ctx context.Context, key, field string) int64 {
	val, err := cache.GetClient().HGet(ctx, key, field).Result()
	if err != nil {
		return 0
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
