package services

import (
	"encoding/json"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nejmigmc-soft/landmarkweb/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.Tag{},
		&models.InsuranceProduct{},
		&models.InsuranceQuote{},
		&models.CurrencyRate{},
	))
	return db
}

func seedAgent(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	phone := "+90 555 000 00 00"
	agent := models.User{
		Name:         "Mert Yılmaz",
		Email:        fmt.Sprintf("%s@landmark.local", t.Name()),
		PasswordHash: "x",
		Phone:        &phone,
		Role:         models.RoleAgent,
	}
	require.NoError(t, db.Create(&agent).Error)
	return agent
}

func locationJSON(city, district string) datatypes.JSON {
	b, _ := json.Marshal(map[string]string{"city": city, "district": district})
	return datatypes.JSON(b)
}

func seedListing(t *testing.T, db *gorm.DB, agentID, title, slug string, price float64, published bool, city string) models.Property {
	t.Helper()
	p := models.Property{
		Title:       title,
		Slug:        slug,
		Description: "Açıklama: " + title,
		Type:        models.PropertyTypeDaire,
		Status:      models.PropertyStatusSatilik,
		Price:       price,
		Currency:    models.CurrencyTRY,
		Rooms:       "3+1",
		Location:    locationJSON(city, "Merkez"),
		AgentID:     agentID,
		Published:   published,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestListPublishedGatesOnPublished(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	seedListing(t, db, agent.ID, "Görünen İlan", "gorunen-ilan", 100, true, "Ankara")
	seedListing(t, db, agent.ID, "Taslak İlan", "taslak-ilan", 100, false, "Ankara")

	svc := NewListingService(db)
	items, total, err := svc.ListPublished(ListingFilters{}, Pagination{Limit: 20}, ResolveSort(""))
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "gorunen-ilan", items[0].Slug)
	}
}

func TestSearchAdminSeesUnpublished(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	seedListing(t, db, agent.ID, "Görünen İlan", "gorunen-ilan", 100, true, "Ankara")
	seedListing(t, db, agent.ID, "Taslak İlan", "taslak-ilan", 100, false, "Ankara")

	svc := NewListingService(db)
	_, total, err := svc.SearchAdmin("", 1, 12)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestListPublishedZeroResultIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	seedListing(t, db, agent.ID, "Villa Bodrum", "villa-bodrum", 100, true, "Muğla")

	q := url.Values{}
	q.Set("city", "NonexistentCity")
	f, err := NormalizeListingFilters(q)
	require.NoError(t, err)

	svc := NewListingService(db)
	items, total, err := svc.ListPublished(f, Pagination{Limit: 20}, ResolveSort(""))
	assert.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.NotNil(t, items)
	assert.Len(t, items, 0)
}

func TestListPublishedFreeTextIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	seedListing(t, db, agent.ID, "Deniz Manzaralı Villa", "deniz-manzarali-villa", 100, true, "Muğla")
	seedListing(t, db, agent.ID, "Şehir Merkezi Daire", "sehir-merkezi-daire", 100, true, "Ankara")

	svc := NewListingService(db)
	f, err := NormalizeListingFilters(url.Values{"q": {"villa"}})
	require.NoError(t, err)

	items, total, err := svc.ListPublished(f, Pagination{Limit: 20}, ResolveSort(""))
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "deniz-manzarali-villa", items[0].Slug)
	}
}

func TestListPublishedPriceBoundsBothApply(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	seedListing(t, db, agent.ID, "Ucuz", "ucuz", 50, true, "Ankara")
	seedListing(t, db, agent.ID, "Orta", "orta", 150, true, "Ankara")
	seedListing(t, db, agent.ID, "Pahalı", "pahali", 500, true, "Ankara")

	q := url.Values{}
	q.Set("minPrice", "100")
	q.Set("maxPrice", "200")
	f, err := NormalizeListingFilters(q)
	require.NoError(t, err)

	svc := NewListingService(db)
	items, total, err := svc.ListPublished(f, Pagination{Limit: 20}, ResolveSort(""))
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "orta", items[0].Slug)
	}
}

func TestListPublishedCityFilterMatchesJSONPath(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	seedListing(t, db, agent.ID, "Ankara Dairesi", "ankara-dairesi", 100, true, "Ankara")
	seedListing(t, db, agent.ID, "İzmir Dairesi", "izmir-dairesi", 100, true, "İzmir")

	svc := NewListingService(db)
	f, err := NormalizeListingFilters(url.Values{"city": {"Ankara"}})
	require.NoError(t, err)

	items, total, err := svc.ListPublished(f, Pagination{Limit: 20}, ResolveSort(""))
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "ankara-dairesi", items[0].Slug)
	}
}

func TestListPublishedSortByPrice(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	seedListing(t, db, agent.ID, "Ucuz", "ucuz", 50, true, "Ankara")
	seedListing(t, db, agent.ID, "Pahalı", "pahali", 500, true, "Ankara")
	seedListing(t, db, agent.ID, "Orta", "orta", 150, true, "Ankara")

	svc := NewListingService(db)
	items, _, err := svc.ListPublished(ListingFilters{}, Pagination{Limit: 20}, ResolveSort("price:desc"))
	assert.NoError(t, err)
	if assert.Len(t, items, 3) {
		assert.Equal(t, "pahali", items[0].Slug)
		assert.Equal(t, "ucuz", items[2].Slug)
	}

	items, _, err = svc.ListPublished(ListingFilters{}, Pagination{Limit: 20}, ResolveSort("price"))
	assert.NoError(t, err)
	if assert.Len(t, items, 3) {
		assert.Equal(t, "ucuz", items[0].Slug)
	}
}

func TestListPublishedSortFieldIsNeverRawSQL(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	seedListing(t, db, agent.ID, "Ucuz", "ucuz", 50, true, "Ankara")
	seedListing(t, db, agent.ID, "Pahalı", "pahali", 500, true, "Ankara")

	svc := NewListingService(db)

	// unknown fields surface as database errors
	_, _, err := svc.ListPublished(ListingFilters{}, Pagination{Limit: 20}, ResolveSort("nosuchcolumn"))
	assert.Error(t, err)

	// a sort expression is treated as one (nonexistent) column name and
	// errors instead of executing
	expr := "(case when (select substr(password_hash,1,1) from users limit 1)='x' then -price else price end)"
	_, _, err = svc.ListPublished(ListingFilters{}, Pagination{Limit: 20}, ResolveSort(expr))
	assert.Error(t, err)

	_, _, err = svc.ListPublished(ListingFilters{}, Pagination{Limit: 20}, ResolveSort("price; drop table properties"))
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Property{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestListPublishedPaginationWindow(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	for i := 0; i < 5; i++ {
		seedListing(t, db, agent.ID,
			fmt.Sprintf("İlan %d", i), fmt.Sprintf("ilan-%d", i), float64(100+i), true, "Ankara")
	}

	svc := NewListingService(db)
	items, total, err := svc.ListPublished(ListingFilters{}, Pagination{Offset: 2, Limit: 2}, ResolveSort("price"))
	assert.NoError(t, err)
	assert.EqualValues(t, 5, total)
	if assert.Len(t, items, 2) {
		assert.Equal(t, "ilan-2", items[0].Slug)
		assert.Equal(t, "ilan-3", items[1].Slug)
	}
}

func TestFindBySlugHonorsPublicationGate(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	published := seedListing(t, db, agent.ID, "Görünen", "gorunen", 100, true, "Ankara")
	draft := seedListing(t, db, agent.ID, "Taslak", "taslak", 100, false, "Ankara")

	svc := NewListingService(db)

	got, err := svc.FindBySlug(published.Slug)
	assert.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)

	_, err = svc.FindBySlug(draft.Slug)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the admin lookup by id skips the gate
	got, err = svc.FindByID(draft.ID)
	assert.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
}

func TestFindBySlugLoadsOrderedImagesAndAgent(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	p := seedListing(t, db, agent.ID, "Galeri", "galeri", 100, true, "Ankara")
	require.NoError(t, db.Create(&[]models.PropertyImage{
		{URL: "/b.webp", Order: 1, PropertyID: p.ID},
		{URL: "/a.webp", Order: 0, PropertyID: p.ID},
		{URL: "/c.webp", Order: 2, PropertyID: p.ID},
	}).Error)

	svc := NewListingService(db)
	got, err := svc.FindBySlug(p.Slug)
	require.NoError(t, err)

	if assert.Len(t, got.Images, 3) {
		assert.Equal(t, "/a.webp", got.Images[0].URL)
		assert.Equal(t, "/b.webp", got.Images[1].URL)
		assert.Equal(t, "/c.webp", got.Images[2].URL)
	}
	if assert.NotNil(t, got.Agent) {
		assert.Equal(t, agent.Name, got.Agent.Name)
		assert.NotNil(t, got.Agent.Phone) // public projection includes phone
	}
}

func TestSearchAdminFreeText(t *testing.T) {
	db := newTestDB(t)
	agent := seedAgent(t, db)
	seedListing(t, db, agent.ID, "Deniz Manzaralı Villa", "deniz-manzarali-villa", 100, true, "Muğla")
	seedListing(t, db, agent.ID, "Şehir Merkezi Daire", "sehir-merkezi-daire", 100, false, "Ankara")

	svc := NewListingService(db)

	items, total, err := svc.SearchAdmin("villa", 1, 12)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "deniz-manzarali-villa", items[0].Slug)
		if assert.NotNil(t, items[0].Agent) {
			assert.Nil(t, items[0].Agent.Phone) // admin projection drops phone
		}
	}

	// city sub-field is searched too
	_, total, err = svc.SearchAdmin("ankara", 1, 12)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
