package domain

// Assets is the static catalog shown on the asset selection screen. Price
// fields are display-only.
var Assets = []Asset{
	{ID: "EURUSD", Name: "EUR/USD", Category: CategoryForex, Price: "1.08542", AbsChange: "+0.00121", Change: "+0.11%", Open: "1.08421", High: "1.08610", Low: "1.08390", Prev: "1.08421", Flag: "🇪🇺🇺🇸"},
	{ID: "GBPUSD", Name: "GBP/USD", Category: CategoryForex, Price: "1.26710", AbsChange: "-0.00204", Change: "-0.16%", Open: "1.26914", High: "1.27020", Low: "1.26650", Prev: "1.26914", Flag: "🇬🇧🇺🇸"},
	{ID: "USDJPY", Name: "USD/JPY", Category: CategoryForex, Price: "151.284", AbsChange: "+0.312", Change: "+0.21%", Open: "150.972", High: "151.440", Low: "150.880", Prev: "150.972", Flag: "🇺🇸🇯🇵"},
	{ID: "AUDCAD", Name: "AUD/CAD", Category: CategoryForex, Price: "0.89412", AbsChange: "+0.00055", Change: "+0.06%", Open: "0.89357", High: "0.89500", Low: "0.89290", Prev: "0.89357", Flag: "🇦🇺🇨🇦"},
	{ID: "BTCUSD", Name: "BTC/USD", Category: CategoryCrypto, Price: "67251.40", AbsChange: "+812.10", Change: "+1.22%", Open: "66439.30", High: "67580.00", Low: "66120.50", Prev: "66439.30", Flag: "₿"},
	{ID: "ETHUSD", Name: "ETH/USD", Category: CategoryCrypto, Price: "3478.15", AbsChange: "-21.40", Change: "-0.61%", Open: "3499.55", High: "3522.00", Low: "3451.10", Prev: "3499.55", Flag: "Ξ"},
	{ID: "SOLUSD", Name: "SOL/USD", Category: CategoryCrypto, Price: "148.62", AbsChange: "+3.87", Change: "+2.67%", Open: "144.75", High: "150.10", Low: "143.90", Prev: "144.75", Flag: "◎"},
	{ID: "XAUUSD", Name: "XAU/USD", Category: CategoryMetals, Price: "2331.45", AbsChange: "+6.20", Change: "+0.27%", Open: "2325.25", High: "2338.90", Low: "2319.70", Prev: "2325.25", Flag: "🥇"},
	{ID: "XAGUSD", Name: "XAG/USD", Category: CategoryMetals, Price: "27.418", AbsChange: "-0.094", Change: "-0.34%", Open: "27.512", High: "27.640", Low: "27.301", Prev: "27.512", Flag: "🥈"},
}

// SupportedTimeframes lists the timeframes offered after an asset is picked.
var SupportedTimeframes = []string{"1m", "3m", "5m", "15m", "30m", "1h"}

var assetsByID = func() map[string]Asset {
	out := make(map[string]Asset, len(Assets))
	for _, a := range Assets {
		out[a.ID] = a
	}
	return out
}()

// FindAsset looks up a catalog asset by identifier.
func FindAsset(id string) (Asset, bool) {
	a, ok := assetsByID[id]
	return a, ok
}

func IsSupportedTimeframe(tf string) bool {
	for _, s := range SupportedTimeframes {
		if s == tf {
			return true
		}
	}
	return false
}
