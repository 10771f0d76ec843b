package deploy

import (
	"fmt"
	"strings"

	"github.com/lumenretail/marketing-agent/internal/social"
)

// PlatformContent is canned per-platform post copy.
type PlatformContent struct {
	Text     string   `json:"text"`
	Hashtags []string `json:"hashtags"`
}

// platformContent produces platform-styled caption text and hashtags
// for a post. Wording shifts when the campaign type reads like a price
// promotion.
func platformContent(platform social.Platform, campaignType string) PlatformContent {
	ct := orDefault(campaignType, "promotion")
	promo := strings.Contains(strings.ToLower(ct), "sale") ||
		strings.Contains(strings.ToLower(ct), "discount") ||
		strings.Contains(strings.ToLower(ct), "clearance")

	switch platform {
	case social.PlatformFacebook:
		if promo {
			return PlatformContent{
				Text:     fmt.Sprintf("Special Offer Alert! %s - Don't miss out! Prices slashed for a limited time only!", title(ct)),
				Hashtags: []string{"#Sale", "#LocalBusiness", "#Shopping", "#Deals"},
			}
		}
		return PlatformContent{
			Text:     fmt.Sprintf("Special Offer Alert! %s - Don't miss out! Visit us today for amazing deals. Limited time only!", title(ct)),
			Hashtags: []string{"#Sale", "#LocalBusiness", "#Shopping", "#Deals"},
		}
	case social.PlatformInstagram:
		if promo {
			return PlatformContent{
				Text:     fmt.Sprintf("New %s\nDeals you won't believe! Tag a friend who needs this!", ct),
				Hashtags: []string{"#ShopLocal", "#RetailTherapy", "#InstaShop", "#MustHave", "#Shopping"},
			}
		}
		return PlatformContent{
			Text:     fmt.Sprintf("New %s\nShop the latest deals! Tag a friend who needs this!", ct),
			Hashtags: []string{"#ShopLocal", "#RetailTherapy", "#InstaShop", "#MustHave", "#Shopping"},
		}
	default:
		return PlatformContent{
			Text:     fmt.Sprintf("%s happening NOW! Don't wait - limited time offer. Check it out!", title(ct)),
			Hashtags: []string{"#Sale", "#Deal", "#Shopping"},
		}
	}
}

// title uppercases the first letter of every word.
func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
