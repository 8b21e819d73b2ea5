package resource

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/backoffice/internal/schema"
)

// widget is a self-contained fixture entity covering the column shapes the
// real models use: required text, nullable text, defaulted float, nullable
// time.
type widget struct {
	ID     string     `gorm:"primaryKey" json:"id"`
	Name   string     `gorm:"not null" json:"name"`
	Note   *string    `json:"note"`
	Amount float64    `gorm:"not null;default:0" json:"amount"`
	Due    *time.Time `json:"due"`
}

func (widget) TableName() string { return "widgets" }

var widgetDesc = schema.Descriptor{
	Name:     "widgets",
	Singular: "widget",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "note", Type: schema.Text, Nullable: true},
		{Name: "amount", Type: schema.Float},
		{Name: "due", Type: schema.DateTime, Nullable: true},
	},
	Relations: []string{"gadgets"},
}

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := "file:" + name + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&widget{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestGormStoreCreateGeneratesUniqueIDs(t *testing.T) {
	store := NewGormStore[widget](openTestDB(t, "store_ids"))
	ctx := context.Background()

	a, err := store.Create(ctx, map[string]any{"name": "first"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := store.Create(ctx, map[string]any{"name": "second"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == "" || b.ID == "" {
		t.Fatalf("ids not generated: %q, %q", a.ID, b.ID)
	}
	if a.ID == b.ID {
		t.Errorf("generated ids collide: %q", a.ID)
	}
}

func TestGormStoreCreateKeepsSuppliedID(t *testing.T) {
	store := NewGormStore[widget](openTestDB(t, "store_supplied_id"))
	item, err := store.Create(context.Background(), map[string]any{"id": "w-1", "name": "named"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID != "w-1" {
		t.Errorf("ID = %q, want w-1", item.ID)
	}
}

func TestGormStoreCreateAppliesDefaults(t *testing.T) {
	store := NewGormStore[widget](openTestDB(t, "store_defaults"))
	item, err := store.Create(context.Background(), map[string]any{"name": "bare"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Amount != 0 {
		t.Errorf("Amount = %v, want schema default 0", item.Amount)
	}
	if item.Note != nil {
		t.Errorf("Note = %v, want nil", *item.Note)
	}
}

func TestGormStoreCreateStoresExplicitNil(t *testing.T) {
	store := NewGormStore[widget](openTestDB(t, "store_nulls"))
	item, err := store.Create(context.Background(), map[string]any{"name": "n", "note": nil, "due": nil})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Note != nil || item.Due != nil {
		t.Errorf("nullable columns not nil: note=%v due=%v", item.Note, item.Due)
	}
}

func TestGormStoreUpdatePartialAndIDImmutable(t *testing.T) {
	store := NewGormStore[widget](openTestDB(t, "store_update"))
	ctx := context.Background()
	item, err := store.Create(ctx, map[string]any{"name": "before", "amount": 5.0})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := store.Update(ctx, item.ID, map[string]any{"id": "hijacked", "name": "after"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != item.ID {
		t.Errorf("ID changed on update: %q -> %q", item.ID, updated.ID)
	}
	if updated.Name != "after" {
		t.Errorf("Name = %q, want after", updated.Name)
	}
	if updated.Amount != 5.0 {
		t.Errorf("Amount = %v, want untouched 5.0", updated.Amount)
	}
	if _, err := store.Get(ctx, "hijacked"); !errors.Is(err, ErrNotFound) {
		t.Errorf("row reachable under hijacked id, err = %v", err)
	}
}

func TestGormStoreUpdateEmptyMapIsNoop(t *testing.T) {
	store := NewGormStore[widget](openTestDB(t, "store_update_empty"))
	ctx := context.Background()
	item, err := store.Create(ctx, map[string]any{"name": "same"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := store.Update(ctx, item.ID, map[string]any{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "same" {
		t.Errorf("Name = %q, want same", updated.Name)
	}
}

func TestGormStoreNotFoundBeforeMutation(t *testing.T) {
	store := NewGormStore[widget](openTestDB(t, "store_missing"))
	ctx := context.Background()

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get err = %v, want ErrNotFound", err)
	}
	if _, err := store.Update(ctx, "nope", map[string]any{"name": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update err = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete err = %v, want ErrNotFound", err)
	}
}

func TestGormStoreFailedCreateLeavesNoRow(t *testing.T) {
	store := NewGormStore[widget](openTestDB(t, "store_rollback"))
	ctx := context.Background()

	// name is NOT NULL; an explicit nil must fail the insert.
	if _, err := store.Create(ctx, map[string]any{"name": nil}); err == nil {
		t.Fatal("create with nil name succeeded, want constraint error")
	}
	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("store holds %d rows after failed create, want 0", len(items))
	}
}

func TestGormStoreListEmptyIsNotNil(t *testing.T) {
	store := NewGormStore[widget](openTestDB(t, "store_empty_list"))
	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil {
		t.Fatal("List returned nil slice, want empty")
	}
	if len(items) != 0 {
		t.Errorf("len = %d, want 0", len(items))
	}
}

func TestGormStoreDelete(t *testing.T) {
	store := NewGormStore[widget](openTestDB(t, "store_delete"))
	ctx := context.Background()
	item, err := store.Create(ctx, map[string]any{"name": "doomed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
}
