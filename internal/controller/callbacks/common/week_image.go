package common

import (
	"bytes"
	"image/color"
	"strconv"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleBold    FontStyle = "bold"
)

// Константы шрифтов
const (
	titleFontSize       = 25.0
	dayFontSize         = 22.0
	lessonLabelFontSize = 16.0
	cellFontSize        = 15.0
	legendItemFontSize  = 12.0
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 120
	dayPaddingX      = 8
	cellBorderRadius = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	lessonPaddingTop = 1
	lessonPaddingBot = 1
	defaultMinLesson = 1
	defaultMaxLesson = 8
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	lessonLabelColor = color.RGBA{110, 115, 120, 200}
	lessonLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 125}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{220, 220, 220, 255}

	cellScheduledColor = color.RGBA{133, 193, 85, 220}
	cellChangedColor   = color.RGBA{255, 200, 120, 255}
	cellCanceledColor  = color.RGBA{158, 158, 158, 200}
	cellCompletedColor = color.RGBA{170, 200, 230, 255}
	cellMakeupColor    = color.RGBA{186, 160, 220, 230}
	cellTextColor      = color.RGBA{20, 24, 28, 230}
	cellShadowColor    = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// weekBounds содержит границы недели
type weekBounds struct {
	start time.Time
	end   time.Time
}

// lessonRange содержит диапазон уроков для отображения
type lessonRange struct {
	start int
	end   int
	total int
}

var cachedFonts = make(map[FontStyle]*opentype.Font)

// loadFont загружает встроенный шрифт Go или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style ...FontStyle) {
	var fontStyle FontStyle = FontStyleDefault
	if len(style) > 0 {
		fontStyle = style[0]
	}

	fontData := goregular.TTF
	if fontStyle == FontStyleBold {
		fontData = gobold.TTF
	}

	// Кешируем парсинг шрифта
	cachedFont, ok := cachedFonts[fontStyle]
	if !ok || cachedFont == nil {
		parsedFont, err := opentype.Parse(fontData)
		if err != nil {
			dc.SetFontFace(basicfont.Face7x13)
			return
		}
		cachedFonts[fontStyle] = parsedFont
		cachedFont = parsedFont
	}

	face, err := opentype.NewFace(cachedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// fallback к встроенному шрифту
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// GenerateWeekImage генерирует изображение недельного расписания
func GenerateWeekImage(weekStart time.Time, occurrences []model.Occurrence) ([]byte, error) {
	week := weekBounds{start: normalizeToDay(weekStart), end: normalizeToDay(weekStart).AddDate(0, 0, 6)}
	today := normalizeToDay(time.Now())
	shouldHighlightToday := isTodayInWeek(today, week)

	byDay := groupByDay(occurrences)
	lessons := calculateLessonRange(occurrences)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(lessons.total)

	drawHeader(dc, week)
	drawLessonLabels(dc, lessons, cellHeight)
	drawDays(dc, week, today, shouldHighlightToday, byDay, lessons, dayWidth, dayHeight, cellHeight)
	drawLegend(dc, dayWidth)

	return encodeImage(dc)
}

// normalizeToDay нормализует время к началу дня
func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isTodayInWeek проверяет, попадает ли сегодня в отображаемую неделю
func isTodayInWeek(today time.Time, week weekBounds) bool {
	return !today.Before(week.start) && !today.After(week.end)
}

// groupByDay группирует занятия по дням
func groupByDay(occurrences []model.Occurrence) map[string][]model.Occurrence {
	byDay := make(map[string][]model.Occurrence)
	for _, occ := range occurrences {
		dateKey := occ.Date.Format("2006-01-02")
		byDay[dateKey] = append(byDay[dateKey], occ)
	}
	return byDay
}

// calculateLessonRange определяет диапазон уроков для отображения
func calculateLessonRange(occurrences []model.Occurrence) lessonRange {
	minLesson := 99
	maxLesson := 0

	for _, occ := range occurrences {
		if occ.StartLesson < minLesson {
			minLesson = occ.StartLesson
		}
		if occ.EndLesson > maxLesson {
			maxLesson = occ.EndLesson
		}
	}

	if maxLesson == 0 {
		minLesson = defaultMinLesson
		maxLesson = defaultMaxLesson
	}

	startLesson := minLesson - lessonPaddingTop
	endLesson := maxLesson + lessonPaddingBot
	if startLesson < 1 {
		startLesson = 1
	}

	return lessonRange{
		start: startLesson,
		end:   endLesson,
		total: endLesson - startLesson + 1,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует заголовок с названием месяца
func drawHeader(dc *gg.Context, week weekBounds) {
	startMonth := week.start.Month()
	endMonth := week.end.Month()

	var title string
	if startMonth == endMonth {
		title = getMonthNameRussian(startMonth)
	} else {
		title = getMonthNameRussian(startMonth) + " - " + getMonthNameRussian(endMonth)
	}

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2, float64(headerHeight)/8+h/2, 0, 0)
}

// drawLessonLabels рисует колонку с номерами уроков слева
func drawLessonLabels(dc *gg.Context, lessons lessonRange, cellHeight float64) {
	loadFont(dc, lessonLabelFontSize)
	dc.SetColor(lessonLabelColor)

	for idx := 0; idx < lessons.total; idx++ {
		lesson := lessons.start + idx
		y := float64(headerHeight) + (float64(idx)+0.5)*cellHeight
		label := strconv.Itoa(lesson) + " урок"
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDays рисует все дни недели с занятиями
func drawDays(dc *gg.Context, week weekBounds, today time.Time, shouldHighlightToday bool,
	byDay map[string][]model.Occurrence, lessons lessonRange, dayWidth, dayHeight int, cellHeight float64) {

	currentDate := week.start

	for dayIndex := 0; dayIndex < totalDaysInWeek; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		isToday := shouldHighlightToday && isSameDay(currentDate, today)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex, isToday)
		drawDayHeader(dc, currentDate, x, y, dayWidth)
		drawLessonLines(dc, x, y, dayWidth, lessons, cellHeight)

		dateKey := currentDate.Format("2006-01-02")
		for _, occ := range byDay[dateKey] {
			drawOccurrence(dc, occ, x, y, dayWidth, lessons, cellHeight)
		}

		currentDate = currentDate.AddDate(0, 0, 1)
	}
}

// isSameDay проверяет, являются ли две даты одним днем
func isSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	if isToday {
		dc.SetColor(todayBgColor)
	} else if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня недели и дату
func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	weekdayStr := getWeekdayShort(date.Weekday())
	dateStr := date.Format("02.01")

	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(dateStr, x+float64(dayWidth)/2, y, 0.5, -1.6)
	dc.DrawStringAnchored(weekdayStr, x+float64(dayWidth)/2, y, 0.5, -0.4)
}

// drawLessonLines рисует горизонтальные линии между уроками
func drawLessonLines(dc *gg.Context, x, y float64, dayWidth int, lessons lessonRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(lessonLineColor)

	for idx := 0; idx <= lessons.total; idx++ {
		ly := y + float64(idx)*cellHeight
		dc.DrawLine(x, ly, x+float64(dayWidth), ly)
		dc.Stroke()
	}
}

// drawOccurrence рисует одно занятие
func drawOccurrence(dc *gg.Context, occ model.Occurrence, x, y float64, dayWidth int, lessons lessonRange, cellHeight float64) {
	cellY := y + float64(occ.StartLesson-lessons.start)*cellHeight
	cellH := float64(occ.EndLesson-occ.StartLesson+1) * cellHeight

	fillColor := getOccurrenceColor(occ)
	cellW := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(cellShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, cellY+2+shadowOffset, cellW, cellH-4, cellBorderRadius)
	dc.Fill()

	// Основная ячейка
	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), cellY+2, cellW, cellH-4, cellBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), cellY+2, cellW, cellH-4, cellBorderRadius)
	dc.Stroke()

	// Название предмета и кабинет
	loadFont(dc, cellFontSize)
	dc.SetColor(cellTextColor)
	txtX := x + float64(dayPaddingX) + 8
	txtY := cellY + 16

	subject := occ.SubjectName
	maxLen := 24
	if len([]rune(subject)) > maxLen {
		subject = string([]rune(subject)[:maxLen-3]) + "..."
	}
	dc.DrawStringAnchored(subject, txtX, txtY, 0, 0)

	if occ.Room != "" && cellH > 34 {
		dc.DrawStringAnchored("каб. "+occ.Room, txtX, txtY+16, 0, 0)
	}
}

// getOccurrenceColor возвращает цвет ячейки по статусу занятия
func getOccurrenceColor(occ model.Occurrence) color.RGBA {
	if occ.Type == model.OccurrenceMakeup && occ.Status == model.StatusScheduled {
		return cellMakeupColor
	}

	switch occ.Status {
	case model.StatusScheduled:
		return cellScheduledColor
	case model.StatusCompleted:
		return cellCompletedColor
	case model.StatusCanceled:
		return cellCanceledColor
	case model.StatusRoomChanged, model.StatusLecturerChanged:
		return cellChangedColor
	default:
		return cellCanceledColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, dayWidth int) {
	legendX := float64(leftLabelsWidth + totalDaysInWeek*dayWidth + 10)
	legendY := float64(imageHeight) - 130.0

	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"По расписанию", cellScheduledColor},
		{"Замена", cellChangedColor},
		{"Перенос", cellMakeupColor},
		{"Отменено", cellCanceledColor},
	}

	boxW := 20.0
	boxH := 14.0
	liX := legendX
	liY := legendY + 22

	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// короткие дни недели
func getWeekdayShort(weekday time.Weekday) string {
	weekdays := map[time.Weekday]string{
		time.Monday:    "Пн",
		time.Tuesday:   "Вт",
		time.Wednesday: "Ср",
		time.Thursday:  "Чт",
		time.Friday:    "Пт",
		time.Saturday:  "Сб",
		time.Sunday:    "Вс",
	}
	return weekdays[weekday]
}

// названия месяцев на русском
func getMonthNameRussian(month time.Month) string {
	months := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return months[month]
}
