// Package i18n provides the client-side message catalog. English is the
// reference language; Amharic covers the store-facing strings. Missing keys
// fall back to English, then to the key itself so untranslated strings stay
// visible instead of blank.
package i18n

type Language string

const (
	English Language = "en"
	Amharic Language = "am"
)

var catalog = map[Language]map[string]string{
	English: {
		"app.name":                "Wonke POS",
		"login.invalid":           "Invalid username or password",
		"login.license_expired":   "This shop's license has expired. Please contact your administrator.",
		"login.select_shop":       "Select a shop to continue",
		"cart.empty":              "Cart is empty",
		"cart.added":              "Added to cart",
		"checkout.success":        "Sale completed",
		"checkout.failed":         "Checkout failed. Nothing was charged.",
		"grv.supplier_required":   "Supplier name is required",
		"grv.invoice_required":    "Invoice number is required",
		"grv.items_required":      "Add at least one received item",
		"grv.unknown_product":     "Unknown product in receipt",
		"grv.success":             "Stock received",
		"dayend.settled":          "Settled",
		"dayend.outstanding":      "Outstanding",
		"dayend.cashed_out":       "Day closed",
		"product.saved":           "Product saved",
		"product.low_stock":       "Low stock",
		"shop.switched":           "Active shop changed",
	},
	Amharic: {
		"app.name":              "ወንቄ ፖስ",
		"login.invalid":         "የተሳሳተ የተጠቃሚ ስም ወይም የይለፍ ቃል",
		"login.license_expired": "የዚህ ሱቅ ፈቃድ ጊዜው አልፏል። እባክዎ አስተዳዳሪዎን ያነጋግሩ።",
		"login.select_shop":     "ለመቀጠል ሱቅ ይምረጡ",
		"cart.empty":            "ጋሪው ባዶ ነው",
		"cart.added":            "ወደ ጋሪ ታክሏል",
		"checkout.success":      "ሽያጭ ተጠናቋል",
		"checkout.failed":       "ክፍያው አልተሳካም። ምንም አልተከፈለም።",
		"grv.success":           "እቃ ገብቷል",
		"dayend.settled":        "ተዘግቷል",
		"dayend.outstanding":    "ያልተዘጋ",
		"dayend.cashed_out":     "ቀን ተዘግቷል",
		"product.saved":         "እቃው ተቀምጧል",
		"product.low_stock":     "አነስተኛ ክምችት",
		"shop.switched":         "ንቁ ሱቅ ተቀይሯል",
	},
}

// T resolves key in lang with an English fallback.
func T(lang Language, key string) string {
	if msgs, ok := catalog[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[English][key]; ok {
		return msg
	}
	return key
}

// Supported reports whether lang has a catalog.
func Supported(lang Language) bool {
	_, ok := catalog[lang]
	return ok
}
