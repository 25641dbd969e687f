package models

// Currency is pull-only reference data keyed by its ISO-like code. The local
// IsActive flag marks currencies the user has enabled in the picker; it is
// owned entirely by this device and is never touched by sync.
type Currency struct {
	Code          string
	Name          string
	NumericCode   int64
	NamePlural    string
	DecimalDigits int64
	Rounding      float64
	Symbol        string
	SymbolNative  string
	IsActive      bool
}

// CurrencyDTO is the wire projection of [Currency]. Field names follow the
// server's reference-data table. There is no tombstone and no updatedAt:
// currencies are replaced wholesale on every pull.
type CurrencyDTO struct {
	Code          string  `json:"c_code"`
	Name          string  `json:"currency_name"`
	NumericCode   int64   `json:"i_code"`
	NamePlural    string  `json:"currency_name_plural"`
	DecimalDigits int64   `json:"decimal_digits"`
	Rounding      float64 `json:"rounding"`
	Symbol        string  `json:"symbol"`
	SymbolNative  string  `json:"symbol_native"`
}

// CurrencyFromDTO converts a pulled reference record into the local model.
// IsActive stays false: the flag belongs to the device, and the storage layer
// preserves the existing value on refresh.
func CurrencyFromDTO(dto CurrencyDTO) Currency {
	return Currency{
		Code:          dto.Code,
		Name:          dto.Name,
		NumericCode:   dto.NumericCode,
		NamePlural:    dto.NamePlural,
		DecimalDigits: dto.DecimalDigits,
		Rounding:      dto.Rounding,
		Symbol:        dto.Symbol,
		SymbolNative:  dto.SymbolNative,
	}
}
