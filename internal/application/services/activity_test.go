package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimakw/polywallet/internal/domain/entities"
	"github.com/bimakw/polywallet/internal/testutil"
)

func TestBuildActivity(t *testing.T) {
	t.Run("buy is shown as outflow", func(t *testing.T) {
		records := []entities.ActivityRecord{
			testutil.CreateTestActivity(testutil.WithPrice(0.61), testutil.WithActivitySize(10)),
		}

		dto := BuildActivity(testutil.ListResult(entities.EndpointActivity, records), time.UTC)

		require.Len(t, dto.Rows, 1)
		row := dto.Rows[0]
		assert.Equal(t, "14/11/2023, 22:13", row.Date)
		assert.Equal(t, "BUY", row.Side)
		assert.Equal(t, SideClassBuy, row.SideClass)
		assert.Equal(t, "61¢", row.Price)
		assert.Equal(t, "10.00", row.Size)
		assert.Equal(t, "-$6.10", row.USDC)
		assert.Equal(t, BadgeNegative, row.USDCClass)
		assert.Equal(t, BadgeNegative, row.OutcomeBadge)
	})

	t.Run("redeem uses usdc size and legacy spelling", func(t *testing.T) {
		records := []entities.ActivityRecord{
			testutil.CreateTestActivity(
				testutil.WithSide(""),
				testutil.WithType("REEDEM"),
				testutil.WithUsdcSize(25),
				testutil.WithActivityOutcome("Down"),
			),
		}

		dto := BuildActivity(testutil.ListResult(entities.EndpointActivity, records), time.UTC)

		row := dto.Rows[0]
		assert.Equal(t, "REDEEM", row.Side)
		assert.Equal(t, SideClassRedeem, row.SideClass)
		assert.Equal(t, "$25.00", row.USDC)
		assert.Equal(t, BadgePositive, row.USDCClass)
		assert.Equal(t, BadgeNegative, row.OutcomeBadge)
	})

	t.Run("sell has no usdc class", func(t *testing.T) {
		records := []entities.ActivityRecord{
			testutil.CreateTestActivity(testutil.WithSide("SELL"), testutil.WithActivityOutcome("No")),
		}

		row := BuildActivity(testutil.ListResult(entities.EndpointActivity, records), time.UTC).Rows[0]
		assert.Equal(t, SideClassSell, row.SideClass)
		assert.Equal(t, "$5.00", row.USDC)
		assert.Equal(t, BadgeNeutral, row.USDCClass)
		assert.Equal(t, BadgeNeutral, row.OutcomeBadge)
	})

	t.Run("outcome falls back to token", func(t *testing.T) {
		records := []entities.ActivityRecord{
			testutil.CreateTestActivity(
				testutil.WithSide("SELL"),
				testutil.WithActivityOutcome(""),
				testutil.WithToken("Up"),
			),
			testutil.CreateTestActivity(
				testutil.WithActivityOutcome("No"),
				testutil.WithToken("Up"),
			),
		}

		rows := BuildActivity(testutil.ListResult(entities.EndpointActivity, records), time.UTC).Rows
		require.Len(t, rows, 2)
		assert.Equal(t, "Up", rows[0].Outcome)
		assert.Equal(t, BadgePositive, rows[0].OutcomeBadge)
		assert.Equal(t, "No", rows[1].Outcome)
		assert.Equal(t, BadgeNegative, rows[1].OutcomeBadge)
	})

	t.Run("missing fields render placeholders", func(t *testing.T) {
		records := []entities.ActivityRecord{{Timestamp: 0}}

		row := BuildActivity(testutil.ListResult(entities.EndpointActivity, records), time.UTC).Rows[0]
		assert.Equal(t, "—", row.Date)
		assert.Equal(t, "—", row.Title)
		assert.Equal(t, "—", row.Slug)
		assert.Equal(t, "—", row.Side)
		assert.Equal(t, "—", row.Outcome)
		assert.Equal(t, "0¢", row.Price)
	})

	t.Run("empty state", func(t *testing.T) {
		dto := BuildActivity(entities.Failed[[]entities.ActivityRecord](entities.EndpointActivity, testutil.ErrUpstream), time.UTC)
		assert.Empty(t, dto.Rows)
		assert.Equal(t, noActivityMessage, dto.Message)
		assert.Equal(t, entities.FetchFailed, dto.Status)
	})
}
