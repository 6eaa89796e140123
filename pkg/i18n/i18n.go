package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundle     *goi18n.Bundle
	bundleOnce sync.Once
	mu         sync.RWMutex
)

// Init builds the bundle with the embedded locales. Safe to call repeatedly.
func Init() {
	bundleOnce.Do(func() {
		b := goi18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)
		entries, err := localeFS.ReadDir("locales")
		if err == nil {
			for _, e := range entries {
				data, err := localeFS.ReadFile("locales/" + e.Name())
				if err != nil {
					continue
				}
				_, _ = b.ParseMessageFileBytes(data, e.Name())
			}
		}
		bundle = b
	})
}

// Load adds an extra message file (e.g. active.fr.json) on top of the embedded ones.
func Load(path string) error {
	Init()
	mu.Lock()
	defer mu.Unlock()
	_, err := bundle.LoadMessageFile(path)
	return err
}

// FromAcceptLanguage picks the preferred base language of an Accept-Language
// header, or fallback when the header is empty or unparseable.
func FromAcceptLanguage(header, fallback string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	base, _ := tags[0].Base()
	return base.String()
}

// T localizes messageID for lang. Unknown ids fall back to the id itself.
func T(lang, messageID string, data map[string]interface{}) string {
	Init()
	mu.RLock()
	defer mu.RUnlock()
	loc := goi18n.NewLocalizer(bundle, lang, language.English.String())
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
