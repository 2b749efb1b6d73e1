package utils

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/models"
	"github.com/ArowuTest/point-balance-service/internal/repositories"
	"github.com/ArowuTest/point-balance-service/internal/repositories/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	goredis "github.com/redis/go-redis/v9"
)

func newTestImporter(t *testing.T) (*PointCSVImporter, *repositories.PointRecordStore) {
	server := miniredis.RunT(t)
	kv := redis.NewKVStore(goredis.NewClient(&goredis.Options{Addr: server.Addr()}))
	t.Cleanup(func() { kv.Close() })

	store := repositories.NewPointRecordStore(kv, "")
	importer := NewPointCSVImporter(store)
	importer.now = func() time.Time { return time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC) }
	return importer, store
}

func TestImport(t *testing.T) {
	importer, store := newTestImporter(t)
	ctx := context.Background()

	input := strings.Join([]string{
		"Id,Point,RefreshTime",
		"42,1,2024-01-01T00:00:00",
		"43,2,",
		",3,2024-01-01",
		"44,lots,2024-01-01",
		"45,4,yesterday",
		"46,5,2024-01-02T03:04:05Z",
	}, "\n")

	result, err := importer.Import(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import fail %v", err)
	}
	if result.TotalRows != 6 || result.Imported != 3 || len(result.Errors) != 3 {
		t.Fatalf("Import result = %+v, want 6 rows, 3 imported, 3 errors", result)
	}

	want := map[string]*models.PointRecord{
		"42": models.NewPointRecord("42", 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		"43": models.NewPointRecord("43", 2, time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)),
		"46": models.NewPointRecord("46", 5, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
	}
	for id, w := range want {
		got, found, err := store.FindByID(ctx, id)
		if err != nil || !found {
			t.Fatalf("FindByID(%s) = (found %v, err %v)", id, found, err)
		}
		if diff := cmp.Diff(w, got); diff != "" {
			t.Errorf("record %s (-want +got):\n%s", id, diff)
		}
	}
}

func TestImportRequiresColumns(t *testing.T) {
	importer, _ := newTestImporter(t)

	if _, err := importer.Import(context.Background(), strings.NewReader("msisdn,amount\n1,2\n")); err == nil {
		t.Fatal("Import should fail without id and point columns")
	}
}

func TestParseTime(t *testing.T) {
	cases := map[string]time.Time{
		"2024-01-02T00:00:00":       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"2024-01-02 10:11:12":       time.Date(2024, 1, 2, 10, 11, 12, 0, time.UTC),
		"2024-01-02":                time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"2024-01-02T09:00:00+09:00": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseTime(in)
		if err != nil {
			t.Errorf("ParseTime(%q) fail %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTime(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseTime("not a time"); err == nil {
		t.Error("ParseTime should reject garbage")
	}
}
