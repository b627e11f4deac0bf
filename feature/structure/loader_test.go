package structure

import (
	"context"
	"testing"

	"structure-manager/core/reconcile"
	"structure-manager/feature/structure/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func areaColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "icon", "color", "description", "sort_order"})
}

func categoryColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "area_id", "parent_category_id", "name", "description", "sort_order"})
}

func attributeColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "category_id", "name", "data_type", "unit", "is_required", "default_value", "validation_rules", "sort_order"})
}

func TestLoadCurrent(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `areas`").WillReturnRows(
		areaColumns().AddRow("a1", "Health", "❤️", "#F00", "health tracking", 1),
	)
	mock.ExpectQuery("SELECT \\* FROM `categories`").WillReturnRows(
		categoryColumns().
			AddRow("c1", "a1", nil, "Sleep", "", 1).
			AddRow("c2", "a1", "c1", "Deep Sleep", "", 1),
	)
	mock.ExpectQuery("SELECT \\* FROM `attribute_definitions`").WillReturnRows(
		attributeColumns().AddRow("d1", "c1", "Hours", "number", "h", true, "", "{}", 1),
	)

	objects, err := LoadCurrent(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, objects, 4)

	byToken := make(map[string]*reconcile.Object)
	for _, obj := range objects {
		byToken[obj.Token] = obj
	}

	area := byToken["a1"]
	require.NotNil(t, area)
	assert.Equal(t, reconcile.KindArea, area.Kind)
	assert.Equal(t, "Health", area.Name)
	assert.Equal(t, "❤️", area.Attributes["icon"])
	assert.Zero(t, area.Position)

	root := byToken["c1"]
	require.NotNil(t, root)
	assert.Equal(t, reconcile.KindCategory, root.Kind)
	assert.Equal(t, "Health", root.AreaName)
	assert.Empty(t, root.ParentName)
	assert.Equal(t, 1, root.Depth)

	nested := byToken["c2"]
	require.NotNil(t, nested)
	assert.Equal(t, "Sleep", nested.ParentName)
	assert.Equal(t, 2, nested.Depth)

	attr := byToken["d1"]
	require.NotNil(t, attr)
	assert.Equal(t, reconcile.KindAttribute, attr.Kind)
	assert.Equal(t, "Sleep", attr.CategoryName)
	assert.Equal(t, "Health", attr.AreaName)
	assert.Equal(t, 1, attr.Depth)
	assert.Equal(t, "number", attr.Attributes["data_type"])
	assert.Equal(t, "true", attr.Attributes["is_required"])
}

func TestLoadCurrent_OrphanAttribute(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `areas`").WillReturnRows(areaColumns())
	mock.ExpectQuery("SELECT \\* FROM `categories`").WillReturnRows(categoryColumns())
	mock.ExpectQuery("SELECT \\* FROM `attribute_definitions`").WillReturnRows(
		attributeColumns().AddRow("d1", "missing", "Hours", "number", "h", false, "", "{}", 1),
	)

	_, err := LoadCurrent(context.Background(), db)
	assert.ErrorContains(t, err, "unknown category")
}

func TestSnapshotObjects(t *testing.T) {
	snap := &models.Snapshot{
		Areas: []models.AreaRow{
			{
				Name: "Health",
				Icon: "❤️",
				Categories: []models.CategoryRow{
					{
						ID:   "c1",
						Name: "Sleep",
						Attributes: []models.AttributeRow{
							{Name: "Hours", DataType: "number", Unit: "h"},
							{Name: "Quality"},
						},
						Categories: []models.CategoryRow{
							{Name: "Deep Sleep"},
						},
					},
				},
			},
			{Name: "Finance"},
		},
	}

	objects := SnapshotObjects(snap)
	require.Len(t, objects, 6)

	area := objects[0]
	assert.Equal(t, reconcile.KindArea, area.Kind)
	assert.Equal(t, "Health", area.Name)
	assert.Equal(t, 1, area.Position)
	assert.Empty(t, area.Token)

	sleep := objects[1]
	assert.Equal(t, reconcile.KindCategory, sleep.Kind)
	assert.Equal(t, "c1", sleep.Token)
	assert.Equal(t, 1, sleep.Depth)
	assert.Equal(t, 1, sleep.Position)

	hours := objects[2]
	assert.Equal(t, reconcile.KindAttribute, hours.Kind)
	assert.Equal(t, "Sleep", hours.CategoryName)
	assert.Equal(t, "number", hours.Attributes["data_type"])

	// Omitted columns get the insert defaults so an unchanged row does
	// not diff against the database.
	quality := objects[3]
	assert.Equal(t, "text", quality.Attributes["data_type"])
	assert.Equal(t, "{}", quality.Attributes["validation_rules"])
	assert.Equal(t, "false", quality.Attributes["is_required"])

	deep := objects[4]
	assert.Equal(t, 2, deep.Depth)
	assert.Equal(t, "Sleep", deep.ParentName)

	finance := objects[5]
	assert.Equal(t, reconcile.KindArea, finance.Kind)
	assert.Equal(t, 2, finance.Position)
}
