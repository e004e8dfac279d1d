package feed

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Locale carries the abbreviated-number units of one interface language.
type Locale struct {
	Tag   language.Tag
	units []unit
}

type unit struct {
	suffix string
	factor float64
}

func newLocale(tag language.Tag, table map[string]float64) Locale {
	l := Locale{Tag: tag}
	for suffix, factor := range table {
		l.units = append(l.units, unit{suffix: strings.ToLower(norm.NFKC.String(suffix)), factor: factor})
	}
	// Longest suffix first so "million" is tried before "m".
	sort.Slice(l.units, func(i, j int) bool {
		if len(l.units[i].suffix) != len(l.units[j].suffix) {
			return len(l.units[i].suffix) > len(l.units[j].suffix)
		}
		return l.units[i].suffix < l.units[j].suffix
	})
	return l
}

var unitTables = []struct {
	tag   language.Tag
	table map[string]float64
}{
	{language.English, map[string]float64{
		"k": 1e3, "m": 1e6, "b": 1e9,
		"thousand": 1e3, "million": 1e6, "billion": 1e9,
		"lakh": 1e5, "crore": 1e7,
	}},
	{language.SimplifiedChinese, map[string]float64{"千": 1e3, "万": 1e4, "亿": 1e8}},
	{language.TraditionalChinese, map[string]float64{"千": 1e3, "萬": 1e4, "万": 1e4, "億": 1e8}},
	{language.Japanese, map[string]float64{"千": 1e3, "万": 1e4, "億": 1e8}},
	{language.Korean, map[string]float64{"천": 1e3, "만": 1e4, "억": 1e8}},
	{language.Hindi, map[string]float64{
		"k": 1e3, "लाख": 1e5, "करोड़": 1e7, "lakh": 1e5, "lac": 1e5, "crore": 1e7, "cr": 1e7,
	}},
	{language.Spanish, map[string]float64{"k": 1e3, "mil": 1e3, "m": 1e6, "mill.": 1e6, "millones": 1e6, "mm": 1e9}},
	{language.Portuguese, map[string]float64{"k": 1e3, "mil": 1e3, "mi": 1e6, "bi": 1e9}},
	{language.German, map[string]float64{"k": 1e3, "tsd.": 1e3, "mio.": 1e6, "mio": 1e6, "mrd.": 1e9, "mrd": 1e9}},
	{language.French, map[string]float64{"k": 1e3, "m": 1e6, "md": 1e9}},
	{language.Russian, map[string]float64{"тыс.": 1e3, "тыс": 1e3, "млн": 1e6, "млрд": 1e9}},
}

var (
	locales       []Locale
	anyLocale     Locale
	localeMatcher language.Matcher
)

func init() {
	tags := make([]language.Tag, 0, len(unitTables))
	merged := make(map[string]float64)
	for _, t := range unitTables {
		locales = append(locales, newLocale(t.tag, t.table))
		tags = append(tags, t.tag)
		for k, v := range t.table {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	localeMatcher = language.NewMatcher(tags)
	anyLocale = newLocale(language.Und, merged)
}

// LocaleFor picks the unit table for a page language. Unknown or missing
// languages get a merged table of every supported locale.
func LocaleFor(lang string) *Locale {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return &anyLocale
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return &anyLocale
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return &anyLocale
	}
	return &locales[idx]
}

// Phrase recognisers for metadata fragments.
var (
	viewersPhrase  = regexp.MustCompile(`(?i)watching|正在观看|正在觀看|視聴中|시청\s*중|espectadores|assistindo|zuschauer|spectateurs|смотрят|देख रहे`)
	viewsPhrase    = regexp.MustCompile(`(?i)\bviews?\b|次观看|次觀看|观看次数|觀看次數|回視聴|視聴回数|조회수|visualizaç|visualizac|vistas|aufrufe|vues|просмотр|बार देखा|व्यूज़`)
	agoPhrase      = regexp.MustCompile(`(?i)\bago\b|前|전|\bhace\b|\bhá\s|\bvor\b|il y a|назад|पहले`)
	secondsPhrase  = regexp.MustCompile(`(?i)\bseconds?\b|\bsecs?\b|秒|초|segundos?|sekunden?|secondes?|секунд|सेकंड|just now|刚刚|剛剛`)
	membersPhrase  = regexp.MustCompile(`(?i)members[ -]only|members first|仅限会员|會員專屬|会員限定|멤버십 전용|solo para miembros|somente para membros|nur für mitglieder|réservé aux membres|только для спонсоров`)
	playlistPhrase = regexp.MustCompile(`(?i)view full playlist|查看完整播放列表|查看完整播放清單|再生リストの全体を見る|전체 재생목록 보기|ver lista de reproducción completa|ver playlist completa|vollständige playlist ansehen|voir la playlist complète|посмотреть весь плейлист`)
	shortsPhrase   = regexp.MustCompile(`(?i)#shorts\b`)
	mixTitle       = regexp.MustCompile(`(?i)^\s*(?:mix|合辑|合輯|自选辑|ミックス|믹스)\s*[-–—:：]`)
)

// timeUnits is checked in order; the first unit whose keyword occurs wins.
var timeUnits = []struct {
	minutes int64
	words   *regexp.Regexp
}{
	{525600, regexp.MustCompile(`(?i)\byears?\b|\byr\b|年|년|\baños?\b|\banos?\b|\bjahr|\bans?\b|\bannées?\b|год|лет|वर्ष|साल`)},
	{43200, regexp.MustCompile(`(?i)\bmonths?\b|\bmo\b|个月|個月|か月|ヶ月|개월|\bmes(?:es)?\b|\bmeses\b|\bmonat|\bmois\b|месяц|महीने|महीना`)},
	{10080, regexp.MustCompile(`(?i)\bweeks?\b|\bwk\b|周|週|주|\bsemanas?\b|\bwoche|\bsemaines?\b|недел|सप्ताह|हफ़्ते`)},
	{1440, regexp.MustCompile(`(?i)\bdays?\b|天|日|일|\bdías?\b|\bdias?\b|\btag|\bjours?\b|дн|ден|दिन`)},
	{60, regexp.MustCompile(`(?i)\bhours?\b|\bhrs?\b|小时|小時|時間|시간|\bhoras?\b|\bstunde|\bheures?\b|час|घंटे|घंटा`)},
	{1, regexp.MustCompile(`(?i)\bminutes?\b|\bmins?\b|分钟|分鐘|分|분|\bminutos?\b|\bminute|минут|मिनट`)},
}

// Label recognisers pull the same facts out of a single accessible label.
var (
	labelViewers = regexp.MustCompile(`(?i)\d[\d.,]*\s?[^\s\d]*\s*(?:watching|人正在观看|正在观看|人正在觀看|正在觀看|人が視聴中|명\s*시청\s*중|espectadores|assistindo|zuschauer|spectateurs)`)
	labelViews   = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d[\d.,]*\s?[^\s\d]*\s*(?:views?\b|次观看|次觀看|回視聴|visualizaciones|visualizações|aufrufe|vues|просмотр)`),
		regexp.MustCompile(`조회수\s*\d[\d.,]*\s?[^\s\d]*`),
	}
	labelElapsed = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+\s*\S+\s+ago\b`),
		regexp.MustCompile(`\d+\s*\S+?前`),
		regexp.MustCompile(`\d+\s*\S+?\s*전`),
		regexp.MustCompile(`(?i)\b(?:hace|há|vor|il y a)\s+\d+\s+\S+`),
		regexp.MustCompile(`(?i)\d+\s+\S+\s+назад`),
	}
)

// Channel-name decorations added by accessible labels.
var (
	channelPrefixes = []string{
		"Go to channel:", "Go to channel", "前往频道：", "前往频道:", "前往頻道：", "前往頻道:",
		"チャンネルに移動:", "채널로 이동:", "Ir al canal:", "Ir para o canal:", "Zum Kanal:",
		"Accéder à la chaîne :", "Accéder à la chaîne:", "Перейти на канал:", "by ",
	}
	channelSuffixes = []string{
		"'s channel", "’s channel", "的频道", "的頻道", "のチャンネル", "님의 채널",
	}
)

// Ownership labels shown on the user's own playlists.
var ownershipLabels = []string{
	"private", "unlisted", "public",
	"私享", "私人", "不公开", "不公開", "公开", "公開", "非公開", "限定公開",
	"비공개", "일부 공개", "공개",
	"privada", "privado", "no listada", "não listado", "pública", "público",
	"privat", "nicht gelistet", "öffentlich",
	"privée", "non répertoriée", "publique",
	"доступ ограничен", "открытый доступ",
}

// userPlaylistIDs are the list ids of the viewer's personal collections.
var userPlaylistIDs = map[string]bool{"WL": true, "LL": true, "LM": true}
