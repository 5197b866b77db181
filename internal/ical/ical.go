// Package ical реализует минимальный кодек iCalendar (RFC 5545),
// достаточный для обмена календарями занятости с Авито.
//
// Decode: ICS-текст → множество занятых дат (VEVENT разворачиваются по дням).
// Encode: множество занятых дат → ICS-текст (последовательные даты
// склеиваются в один VEVENT с exclusive DTEND).
package ical

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lesnoydomik/booking-service/pkg/types"
)

// CalendarMarker обязательный маркер начала iCal-документа
const CalendarMarker = "BEGIN:VCALENDAR"

// Event одно событие календаря.
// End — exclusive по конвенции iCal; пустой End означает однодневное событие.
type Event struct {
	Start   types.Date
	End     types.Date
	Summary string
}

// IsCalendar проверяет, что текст похож на iCal-документ
func IsCalendar(text string) bool {
	return strings.Contains(text, CalendarMarker)
}

// Parse извлекает все VEVENT из ICS-текста.
// События без распознаваемого DTSTART отбрасываются.
func Parse(icsText string) []Event {
	lines := unfold(icsText)

	events := make([]Event, 0)
	inEvent := false
	var current Event

	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			inEvent = true
			current = Event{}
		case line == "END:VEVENT":
			inEvent = false
			if !current.Start.IsZero() {
				events = append(events, current)
			}
		case inEvent:
			switch {
			case strings.HasPrefix(line, "DTSTART"):
				if d, ok := extractDate(line); ok {
					current.Start = d
				}
			case strings.HasPrefix(line, "DTEND"):
				if d, ok := extractDate(line); ok {
					current.End = d
				}
			case strings.HasPrefix(line, "SUMMARY"):
				if idx := strings.IndexByte(line, ':'); idx >= 0 {
					current.Summary = line[idx+1:]
				}
			}
		}
	}

	return events
}

// extractDate извлекает календарную дату из строки свойства iCal.
// Поддерживаются форматы:
//
//	DTSTART;VALUE=DATE:20260315
//	DTSTART:20260315T140000Z
//	DTSTART;TZID=Europe/Moscow:20260315T140000
//
// Берутся только первые 8 цифр значения (YYYYMMDD), время отбрасывается.
func extractDate(line string) (types.Date, bool) {
	idx := strings.LastIndexByte(line, ':')
	if idx < 0 {
		return "", false
	}
	value := strings.TrimSpace(line[idx+1:])

	if len(value) < 8 {
		return "", false
	}
	raw := value[:8]
	for _, c := range raw {
		if c < '0' || c > '9' {
			return "", false
		}
	}

	d, err := types.ParseDate(raw[:4] + "-" + raw[4:6] + "-" + raw[6:8])
	if err != nil {
		return "", false
	}
	return d, true
}

// ExpandEvents разворачивает события в дедуплицированное множество дат.
// Событие без DTEND считается однодневным (end = start + 1, DTEND exclusive).
func ExpandEvents(events []Event) map[types.Date]struct{} {
	dates := make(map[types.Date]struct{})

	for _, ev := range events {
		if ev.Start.IsZero() {
			continue
		}

		end := ev.End
		if end.IsZero() {
			end = ev.Start.Next()
		}

		for d := ev.Start; d.Before(end); d = d.Next() {
			dates[d] = struct{}{}
		}
	}

	return dates
}

// DateRange непрерывный диапазон дат, границы включительно
type DateRange struct {
	Start types.Date
	End   types.Date
}

// GroupConsecutive склеивает последовательные даты в минимальный набор
// непрерывных диапазонов. Даты сортируются по возрастанию; дата продолжает
// текущий диапазон, если идет ровно на следующий день после его конца.
func GroupConsecutive(dates []types.Date) []DateRange {
	if len(dates) == 0 {
		return nil
	}

	sorted := make([]types.Date, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	ranges := make([]DateRange, 0)
	current := DateRange{Start: sorted[0], End: sorted[0]}

	for _, d := range sorted[1:] {
		if d == current.End {
			continue // дубликат
		}
		if d == current.End.Next() {
			current.End = d
		} else {
			ranges = append(ranges, current)
			current = DateRange{Start: d, End: d}
		}
	}
	ranges = append(ranges, current)

	return ranges
}

// EncodeOptions параметры генерации ICS-документа
type EncodeOptions struct {
	// Domain домен сайта, участвует в UID событий
	Domain string
	// CalendarName отображаемое имя календаря (X-WR-CALNAME)
	CalendarName string
	// Summary текст события занятости
	Summary string
	// Now момент генерации (DTSTAMP)
	Now time.Time
}

// Encode сериализует множество занятых дат в ICS-документ.
// Один VEVENT на каждый непрерывный диапазон, UID стабилен и выводится
// из даты начала диапазона, DTEND — exclusive (последний день + 1).
func Encode(dates []types.Date, opts EncodeOptions) string {
	ranges := GroupConsecutive(dates)
	stamp := opts.Now.UTC().Format("20060102T150405Z")

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//LesnoyDomik//Calendar//RU",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		foldLine("X-WR-CALNAME:" + opts.CalendarName),
	}

	for _, r := range ranges {
		lines = append(lines,
			"BEGIN:VEVENT",
			foldLine("UID:"+r.Start.String()+"-blocked@"+opts.Domain),
			"DTSTAMP:"+stamp,
			"DTSTART;VALUE=DATE:"+toICalDate(r.Start),
			"DTEND;VALUE=DATE:"+toICalDate(r.End.Next()),
			foldLine("SUMMARY:"+opts.Summary),
			"STATUS:CONFIRMED",
			"TRANSP:OPAQUE",
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")

	return strings.Join(lines, "\r\n") + "\r\n"
}

// toICalDate форматирует дату как YYYYMMDD
func toICalDate(d types.Date) string {
	return strings.ReplaceAll(d.String(), "-", "")
}

// maxLineOctets максимальная длина строки iCal до фолдинга (RFC 5545 §3.1)
const maxLineOctets = 75

// foldLine переносит строки длиннее 75 октетов: продолжение начинается
// с пробела. Разрез не разрывает UTF-8 последовательности.
func foldLine(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}

	var b strings.Builder
	rest := line
	limit := maxLineOctets
	for len(rest) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(rest[cut]) {
			cut--
		}
		b.WriteString(rest[:cut])
		b.WriteString("\r\n ")
		rest = rest[cut:]
		limit = maxLineOctets - 1 // минус ведущий пробел продолжения
	}
	b.WriteString(rest)
	return b.String()
}

// unfold разворачивает перенесенные строки и разбивает текст на строки
func unfold(text string) []string {
	text = strings.ReplaceAll(text, "\r\n ", "")
	text = strings.ReplaceAll(text, "\r\n\t", "")
	text = strings.ReplaceAll(text, "\n ", "")
	text = strings.ReplaceAll(text, "\n\t", "")

	rawLines := strings.Split(text, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		lines = append(lines, strings.TrimRight(l, "\r"))
	}
	return lines
}
