package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/testutil"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenStore(t)

	csv := `First Name,Surname,Set,Base Price,Overseas
Virat,Kohli,Marquee,200,
Pat,Cummins,Marquee,200,Y
Yashasvi,Jaiswal,Batters,100,
`
	res, err := Load(ctx, db, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Players)
	assert.Equal(t, []string{"Marquee", "Batters"}, res.Lists)

	pools, err := db.PoolLists(ctx)
	require.NoError(t, err)
	require.Len(t, pools["Marquee"], 2)
	require.Len(t, pools["Batters"], 1)

	entry, err := db.PoolEntry(ctx, "Pat Cummins")
	require.NoError(t, err)
	assert.Equal(t, int64(20_000_000), entry.BasePrice)
	assert.True(t, entry.Overseas)

	// Set order from the file becomes the auction list order.
	order, err := db.ListOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Marquee", "Batters"}, order)
}

func TestLoad_UnsortedFallback(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenStore(t)

	csv := `First Name,Surname,Set,Base Price
Mystery,Player,,100
`
	res, err := Load(ctx, db, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"unsorted"}, res.Lists)

	entry, err := db.PoolEntry(ctx, "Mystery Player")
	require.NoError(t, err)
	assert.Equal(t, "unsorted", entry.List)
}

func TestLoad_ParseErrorLoadsNothing(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenStore(t)

	csv := `First Name,Surname,Set,Base Price
Rohit,Sharma,Marquee,200
Bad,Row,Marquee,not-a-price
`
	_, err := Load(ctx, db, strings.NewReader(csv))
	require.Error(t, err)

	pools, err := db.PoolLists(ctx)
	require.NoError(t, err)
	assert.Empty(t, pools)
}
