package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "record_too_short":
			return "レコードが短すぎます"
		case "conversion_failed":
			return "値の変換に失敗しました"
		case "field_count_mismatch":
			return "フィールド数が一致しません"
		case "unterminated_quote":
			return "引用符が閉じられていません"
		case "bare_quote":
			return "不正な引用符です"
		}
	default: // "en"
		switch code {
		case "record_too_short":
			return "record is shorter than the schema total width"
		case "conversion_failed":
			return "value conversion failed"
		case "field_count_mismatch":
			return "wrong number of fields"
		case "unterminated_quote":
			return "unterminated quoted field"
		case "bare_quote":
			return "bare quote in non-quoted field"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
