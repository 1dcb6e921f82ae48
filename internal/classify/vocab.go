package classify

import "strings"

// neverTranslateKeys marks columns carrying structured catalog data.
// A column whose lower-cased name contains any of these never reaches
// the translator.
var neverTranslateKeys = []string{
	"id", "sku", "slug", "price", "regular price", "sale price", "stock", "weight", "length", "width", "height",
	"download", "image", "images", "gallery", "virtual", "tax", "shipping", "menu order", "status", "catalog visibility",
	"date", "parent", "upsells", "cross-sells", "external url", "button text", "position", "reviews", "sold", "rating",
	"manage stock", "stock status", "allow backorders", "purchase note",
	"categories", "tags", "brands", "swatches attributes",
}

// textualKeys marks columns that carry prose by name.
var textualKeys = []string{
	"name", "title", "description", "short description", "excerpt", "content",
	"meta: rank_math_title", "meta: rank_math_description", "yoast", "og:", "twitter:", "seo",
}

// htmlLikeKeys marks prose columns whose content embeds HTML markup, which
// the translator must preserve as structure.
var htmlLikeKeys = []string{"description", "content", "excerpt", "short description"}

// ingredientsKeys recognizes ingredient-list columns across the languages
// product exports commonly arrive in.
var ingredientsKeys = []string{
	"ingredients", "ingredienti", "ingredientes", "ingrédients", "ingrediens", "inhaltstoffe", "inhaltsstoffe",
	"zloženie", "zlozenie", "složení", "slozeni", "skład", "sklad",
	"összetevők", "osszetevok",
	"sastojci", "sastav", "sestavine", "состав", "склад", "ingrediente",
}

// Attribute columns: "Attribute 1 name" holds controlled vocabulary labels
// (never translated), "Attribute 1 value(s)" holds customer-facing text.
const (
	attributeNameKey     = "attribute "
	attributeNameSuffix  = " name"
	attributeValueSuffix = " value(s)"
)

func containsAny(s string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
