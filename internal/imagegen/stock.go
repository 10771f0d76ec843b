package imagegen

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lumenretail/marketing-agent/internal/campaign"
)

// Curated picsum.photos image IDs per product category. The pools were
// hand-picked so the fallback creative still looks on-brand.
var stockPools = map[string][]int{
	"fashion":    {1, 15, 16, 21, 24, 27, 33, 40, 48, 49, 52, 56, 60, 64, 65, 82, 91},
	"food":       {2, 10, 30, 42, 51, 59, 70, 96, 162, 163, 225, 292, 326, 431, 436},
	"technology": {0, 3, 20, 77, 119, 152, 180, 249, 250, 326, 367, 487},
	"beauty":     {8, 26, 36, 47, 54, 61, 63, 103, 177, 200, 240, 314, 349},
	"home":       {7, 14, 17, 19, 101, 106, 112, 152, 175, 181, 398, 447, 502},
	"retail":     {1, 2, 3, 10, 15, 20, 30, 42, 48, 52, 56, 60, 70, 82, 91, 96},
}

// stockCategory maps a store type onto a stock image category
func stockCategory(storeType string) string {
	st := strings.ToLower(storeType)
	switch {
	case strings.Contains(st, "clothing"), strings.Contains(st, "fashion"), strings.Contains(st, "apparel"):
		return "fashion"
	case strings.Contains(st, "food"), strings.Contains(st, "grocery"), strings.Contains(st, "restaurant"):
		return "food"
	case strings.Contains(st, "electronics"), strings.Contains(st, "tech"):
		return "technology"
	case strings.Contains(st, "beauty"), strings.Contains(st, "cosmetic"):
		return "beauty"
	case strings.Contains(st, "home"), strings.Contains(st, "furniture"):
		return "home"
	default:
		return "retail"
	}
}

// StockImage returns a curated stock image URL for the campaign.
// The pick is seeded from campaign details plus the current time so
// repeated posts for the same campaign vary. Never fails and needs no
// credentials.
func StockImage(platform string, cc campaign.Context) string {
	category := stockCategory(cc.StoreType)
	pool := stockPools[category]

	seed := platform + strings.ToLower(cc.StoreType) + strings.ToLower(cc.CampaignType) + cc.Goal + cc.Offers +
		strconv.FormatInt(time.Now().UnixNano(), 10)
	sum := md5.Sum([]byte(seed))
	n, _ := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 64)

	id := pool[n%uint64(len(pool))]
	return fmt.Sprintf("https://picsum.photos/id/%d/600/400", id)
}

// StockPool exposes the image IDs for a store type, used by tests and
// the asset report endpoint.
func StockPool(storeType string) []int {
	return stockPools[stockCategory(storeType)]
}
