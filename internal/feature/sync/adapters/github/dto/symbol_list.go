// Package dto は銘柄リストJSONのデータ転送オブジェクトを定義します。
package dto

// SymbolEntry は銘柄リストファイル内の1銘柄分のJSONオブジェクトを表します。
// 数値項目もソース側では文字列で表現されます（例: "$65.86", "1.99%"）。
type SymbolEntry struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	LastSale  string `json:"lastsale"`
	NetChange string `json:"netchange"`
	PctChange string `json:"pctchange"`
	MarketCap string `json:"marketCap"`
	Country   string `json:"country"`
	IPOYear   string `json:"ipoyear"`
	Volume    string `json:"volume"`
	Sector    string `json:"sector"`
	Industry  string `json:"industry"`
	URL       string `json:"url"`
}
