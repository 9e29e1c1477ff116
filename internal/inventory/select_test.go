package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chefwho/internal/models"
)

func intPtr(v int) *int { return &v }

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestSelectLeastFreshTieBreaksOnUpdatedAt(t *testing.T) {
	items := []models.InventoryItem{
		{UserID: "u1", Name: "Spinach", DaysLeft: intPtr(1), UpdatedAt: day("2024-01-02")},
		{UserID: "u1", Name: "Carrots", DaysLeft: intPtr(1), UpdatedAt: day("2024-01-01")},
	}
	got, ok := SelectLeastFresh(items, "u1")
	require.True(t, ok)
	assert.Equal(t, "Carrots", got.Name)
}

func TestSelectLeastFreshOrdering(t *testing.T) {
	tests := []struct {
		name  string
		items []models.InventoryItem
		want  string
	}{
		{
			name: "fewest days wins",
			items: []models.InventoryItem{
				{UserID: "u", Name: "Apples", DaysLeft: intPtr(7)},
				{UserID: "u", Name: "Berries", DaysLeft: intPtr(2)},
				{UserID: "u", Name: "Bananas", DaysLeft: intPtr(4)},
			},
			want: "Berries",
		},
		{
			name: "missing days sorts after tracked",
			items: []models.InventoryItem{
				{UserID: "u", Name: "Mystery"},
				{UserID: "u", Name: "Onion", DaysLeft: intPtr(30)},
			},
			want: "Onion",
		},
		{
			name: "missing days ties with 9999",
			items: []models.InventoryItem{
				{UserID: "u", Name: "Rice", DaysLeft: intPtr(MissingDaysLeft), UpdatedAt: day("2024-03-01")},
				{UserID: "u", Name: "Mystery", UpdatedAt: day("2024-02-01")},
			},
			want: "Mystery",
		},
		{
			name: "missing updated_at sorts last",
			items: []models.InventoryItem{
				{UserID: "u", Name: "Unstamped", DaysLeft: intPtr(3)},
				{UserID: "u", Name: "Stamped", DaysLeft: intPtr(3), UpdatedAt: day("2030-01-01")},
			},
			want: "Stamped",
		},
		{
			name: "full tie keeps first",
			items: []models.InventoryItem{
				{UserID: "u", Name: "First", DaysLeft: intPtr(3)},
				{UserID: "u", Name: "Second", DaysLeft: intPtr(3)},
			},
			want: "First",
		},
		{
			name: "negative days are most urgent",
			items: []models.InventoryItem{
				{UserID: "u", Name: "Fresh", DaysLeft: intPtr(0)},
				{UserID: "u", Name: "Spoiled", DaysLeft: intPtr(-2)},
			},
			want: "Spoiled",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectLeastFresh(tt.items, "u")
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestSelectLeastFreshFiltersByUser(t *testing.T) {
	items := []models.InventoryItem{
		{UserID: "other", Name: "Milk", DaysLeft: intPtr(0)},
		{UserID: "u1", Name: "Leeks", DaysLeft: intPtr(5)},
	}
	got, ok := SelectLeastFresh(items, "u1")
	require.True(t, ok)
	assert.Equal(t, "Leeks", got.Name)

	_, ok = SelectLeastFresh(items, "nobody")
	assert.False(t, ok)

	_, ok = SelectLeastFresh(nil, "u1")
	assert.False(t, ok)
}

func TestSelectLeastFreshMatchesUUIDSpellings(t *testing.T) {
	items := []models.InventoryItem{
		{UserID: "6F9619FF-8B86-D011-B42D-00C04FC964FF", Name: "Basil", DaysLeft: intPtr(1)},
	}
	for _, id := range []string{
		"6f9619ff-8b86-d011-b42d-00c04fc964ff",
		"{6f9619ff-8b86-d011-b42d-00c04fc964ff}",
		"urn:uuid:6f9619ff-8b86-d011-b42d-00c04fc964ff",
		" 6F9619FF8B86D011B42D00C04FC964FF ",
	} {
		_, ok := SelectLeastFresh(items, id)
		assert.True(t, ok, id)
	}
}

func TestNormalizeUserIDKeepsPlainText(t *testing.T) {
	assert.Equal(t, "Chef-42", NormalizeUserID(" Chef-42 "))
	assert.NotEqual(t, NormalizeUserID("chef-42"), NormalizeUserID("Chef-42"))
}
