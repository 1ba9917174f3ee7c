package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "attribute").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.base(code)
	if a := data["attribute"]; a != "" {
		return msg + ": " + a
	}
	return msg
}

func (t dictTranslator) base(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "duplicate_attribute":
			return "属性が重複して宣言されています"
		case "required":
			return "必須属性が不足しています"
		case "invalid_enum":
			return "許可されていない値です"
		case "invalid_type":
			return "型が不正です"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		}
	default: // "en"
		switch code {
		case "duplicate_attribute":
			return "duplicate attribute"
		case "required":
			return "missing mandatory attribute"
		case "invalid_enum":
			return "value not allowed"
		case "invalid_type":
			return "invalid type"
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
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
