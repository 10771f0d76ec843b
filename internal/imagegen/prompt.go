package imagegen

import (
	"fmt"
	"strings"

	"github.com/lumenretail/marketing-agent/internal/campaign"
)

var platformStyles = map[string]string{
	"facebook":  "warm lifestyle photography with community feel, people using products naturally",
	"instagram": "aesthetically stunning with bold colors, high-fashion editorial quality, Instagram-worthy product showcase",
	"twitter":   "dynamic candid moment with energy and movement, photojournalistic authenticity",
}

// BuildPrompt composes a product-focused image generation prompt from
// the campaign context. The scene, theme, and mood track the campaign's
// intent so acquisition creative reads differently from loyalty creative.
func BuildPrompt(platform string, cc campaign.Context) string {
	category := cc.StoreType
	if category == "" {
		category = "retail"
	}

	campaignType := strings.ToLower(cc.CampaignType)
	goal := strings.ToLower(cc.Goal)
	offers := strings.ToLower(cc.Offers)

	var scene, theme, mood string
	switch {
	case strings.Contains(campaignType, "acquisition") || strings.Contains(goal, "new customer"):
		scene = fmt.Sprintf("attractive %s products being used by happy customers in lifestyle setting", category)
		theme = "inviting, energetic, and discovery-focused"
		mood = "excitement and curiosity"
	case strings.Contains(campaignType, "retention") || strings.Contains(goal, "loyalty"):
		scene = fmt.Sprintf("premium %s products showcased in elegant setting with satisfied customers", category)
		theme = "luxurious, exclusive, and rewarding"
		mood = "satisfaction and appreciation"
	case strings.Contains(offers, "sale") || strings.Contains(offers, "discount") || strings.Contains(campaignType, "promotion"):
		scene = fmt.Sprintf("eye-catching collection of %s products with special offer highlights", category)
		theme = "energetic, value-focused, and compelling"
		mood = "excitement and urgency"
	case strings.Contains(goal, "seasonal") || strings.Contains(goal, "holiday"):
		scene = fmt.Sprintf("festive display of %s products with seasonal decorations and happy people", category)
		theme = "seasonal, festive, and celebratory"
		mood = "joy and celebration"
	default:
		scene = fmt.Sprintf("beautiful %s products in modern lifestyle context with people enjoying them", category)
		theme = "contemporary, appealing, and lifestyle-focused"
		mood = "comfort and satisfaction"
	}

	locationContext := ""
	if cc.Location != "" {
		locationContext = " for " + cc.Location + " market"
	}

	style, ok := platformStyles[platform]
	if !ok {
		style = "professional commercial photography"
	}

	audience := cc.TargetAudience
	if audience == "" {
		audience = "customers"
	}

	return fmt.Sprintf(`Professional product photography for %s marketing campaign%s.

SCENE: %s
Campaign Focus: %s
Target Audience: %s

VISUAL STYLE: %s
Atmosphere: %s
Emotional Tone: %s

MAIN FOCUS: %s products (NOT stores or buildings)
Show products being used, worn, or enjoyed by people in real-life scenarios,
displayed attractively in lifestyle context, featured as the hero of the image.

VISUAL REQUIREMENTS:
- High-quality 4K commercial product photography
- Natural lighting with professional color grading
- NO text, NO words, NO letters, NO price tags, NO signs
- NO store interiors, NO shopping carts, NO cash registers

MOOD & FEELING: %s, aspirational lifestyle that makes viewers want to own and use these %s products.`,
		category, locationContext, scene, cc.Goal, audience, style, theme, mood, category, mood, category)
}
