package store

import (
	"os"
	"path/filepath"
	"testing"

	"crvparking/internal/db"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestFileStore_SeedsWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parking.json")
	st := NewFileStore(path)

	data, err := st.Load()
	assert.NoError(t, err)

	assert.Equal(t, DefaultTotalSpots, data.Settings.TotalSpots)

	assert.Len(t, data.Users, 1)
	assert.Equal(t, DefaultUsername, data.Users[0].Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(data.Users[0].PasswordHash), []byte(DefaultPassword)))

	assert.Len(t, data.PriceRules, 1)
	rule := data.PriceRules[0]
	assert.Equal(t, DefaultRuleName, rule.Name)
	assert.True(t, rule.Active())
	assert.Equal(t, "10.00", rule.FirstHourValue.StringFixed(2))
	assert.Equal(t, 15, rule.FractionMinutes)
	assert.Equal(t, "2.00", rule.FractionValue.StringFixed(2))
	assert.NotNil(t, rule.DailyMax)
	assert.Equal(t, "30.00", rule.DailyMax.StringFixed(2))

	// The seed is persisted immediately.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parking.json")
	st := NewFileStore(path)

	data, err := st.Load()
	assert.NoError(t, err)

	data.Counters.Vehicles++
	data.Vehicles = append(data.Vehicles, db.Vehicle{ID: data.Counters.Vehicles, Plate: "ABC1234", Model: "Corolla"})
	assert.NoError(t, st.Save(data))

	reloaded, err := NewFileStore(path).Load()
	assert.NoError(t, err)
	assert.Len(t, reloaded.Vehicles, 1)
	assert.Equal(t, "ABC1234", reloaded.Vehicles[0].Plate)
	assert.Equal(t, 1, reloaded.Counters.Vehicles)
	assert.True(t, reloaded.PriceRules[0].FirstHourValue.Equal(data.PriceRules[0].FirstHourValue))
}

func TestFileStore_ReseedsOnUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parking.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	data, err := NewFileStore(path).Load()
	assert.NoError(t, err)

	assert.Equal(t, DefaultTotalSpots, data.Settings.TotalSpots)
	assert.Len(t, data.PriceRules, 1)
}
