package seed

import (
	"math/rand"
	"time"

	"speedballhub/config"
	"speedballhub/internal/derive"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

const (
	playerCount    = 25
	resultsPerTest = 12
)

var maleFirstNames = []string{
	"أحمد", "محمد", "عبدالله", "خالد", "سالم", "فهد", "عبدالعزيز", "سعد", "ناصر", "عبدالرحمن",
	"يوسف", "إبراهيم", "عمر", "علي", "حسن", "طارق", "وليد", "ماجد", "بندر", "تركي",
}

var femaleFirstNames = []string{
	"فاطمة", "نورا", "سارة", "ريم", "هند", "منال", "أمل", "رانيا", "دانة", "لينا",
	"شهد", "جود", "رؤى", "غلا", "مريم", "زينب", "هيا", "نوف", "رهف", "ندى",
}

var lastNames = []string{
	"الأحمد", "العتيبي", "الشمري", "القحطاني", "الحربي", "الدوسري", "المطيري", "العنزي",
	"الشهري", "الغامدي", "الزهراني", "العسيري", "الجهني", "الخالدي", "السعيد", "الراشد",
}

var seedTests = []Test{
	{Name: "بطولة الربيع للسرعة", TestType: TestType6030, Description: stringPtr("بطولة فصلية لقياس سرعة الأداء في كرة السرعة")},
	{Name: "اختبار التحمل الصيفي", TestType: TestType3030, Description: stringPtr("اختبار تحمل عالي الكثافة خلال فصل الصيف")},
	{Name: "تقييم المبتدئين الشهري", TestType: TestType3060, Description: stringPtr("تقييم شهري للاعبين الجدد مع فترات راحة مناسبة")},
	{Name: "بطولة نهاية العام", TestType: TestType6030, Description: stringPtr("البطولة السنوية الكبرى لنادي رواد")},
	{Name: "اختبار الدوري المحلي", TestType: TestType3030, Description: stringPtr("اختبار تأهيلي للدوري المحلي")},
	{Name: "تجارب الفريق الوطني", TestType: TestType6030, Description: stringPtr("اختبارات تجارب الانضمام للفريق الوطني")},
	{Name: "دورة التطوير الشتوية", TestType: TestType3060, Description: stringPtr("دورة تدريبية تطويرية خلال فصل الشتاء")},
	{Name: "اختبار منتصف الموسم", TestType: TestType3030, Description: stringPtr("تقييم منتصف الموسم لجميع المستويات")},
}

// Ages are weighted toward youth and teen players, matching the club's
// actual membership.
var ageRanges = []struct {
	min, max, weight int
}{
	{8, 12, 20},
	{13, 17, 30},
	{18, 25, 25},
	{26, 35, 20},
	{36, 45, 5},
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	var count int64
	if err := db.Model(&Player{}).Count(&count).Error; err != nil {
		return log.Err("failed to check existing players", err)
	}
	if count > 0 {
		log.Info("Database already contains players, skipping seed", "count", count)
		return nil
	}

	rng := rand.New(rand.NewSource(12345))
	now := time.Now()

	players := make([]Player, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		gender := GenderMale
		first := maleFirstNames[rng.Intn(len(maleFirstNames))]
		if rng.Intn(2) == 1 {
			gender = GenderFemale
			first = femaleFirstNames[rng.Intn(len(femaleFirstNames))]
		}

		players = append(players, Player{
			Name:        first + " " + lastNames[rng.Intn(len(lastNames))],
			DateOfBirth: randomBirthDate(rng, now),
			Gender:      gender,
		})
	}

	if err := db.Create(&players).Error; err != nil {
		return log.Err("failed to seed players", err)
	}
	log.Info("Seeded players", "count", len(players))

	tests := make([]Test, len(seedTests))
	copy(tests, seedTests)
	for i := range tests {
		conducted := now.AddDate(0, -rng.Intn(12), -rng.Intn(28))
		tests[i].DateConducted = NewDate(conducted.Year(), conducted.Month(), conducted.Day())
	}

	if err := db.Create(&tests).Error; err != nil {
		return log.Err("failed to seed tests", err)
	}
	log.Info("Seeded tests", "count", len(tests))

	var results []TestResult
	for _, test := range tests {
		participants := resultsPerTest*7/10 + rng.Intn(resultsPerTest*6/10)
		if participants > len(players) {
			participants = len(players)
		}

		for _, idx := range rng.Perm(len(players))[:participants] {
			player := players[idx]
			age := derive.Age(player.DateOfBirth.Time, now)
			results = append(results, TestResult{
				PlayerID:       player.ID,
				TestID:         test.ID,
				LeftHandScore:  realisticScore(rng, age, test.TestType, 0.95),
				RightHandScore: realisticScore(rng, age, test.TestType, 1.0),
				ForehandScore:  realisticScore(rng, age, test.TestType, 1.05),
				BackhandScore:  realisticScore(rng, age, test.TestType, 0.9),
			})
		}
	}

	if err := db.Create(&results).Error; err != nil {
		return log.Err("failed to seed test results", err)
	}
	log.Info("Seeded test results", "count", len(results))

	distribution := map[string]int{}
	for _, player := range players {
		distribution[derive.AgeGroupAt(player.DateOfBirth.Time, now)]++
	}
	log.Info("Age group distribution", "distribution", distribution)

	return nil
}

func randomBirthDate(rng *rand.Rand, now time.Time) Date {
	totalWeight := 0
	for _, r := range ageRanges {
		totalWeight += r.weight
	}

	pick := rng.Intn(totalWeight)
	age := 18
	for _, r := range ageRanges {
		if pick < r.weight {
			age = r.min + rng.Intn(r.max-r.min+1)
			break
		}
		pick -= r.weight
	}

	birth := now.AddDate(-age, 0, -rng.Intn(364))
	return NewDate(birth.Year(), birth.Month(), birth.Day())
}

// Scores scale with the test's intensity and peak around ages 18-25.
func realisticScore(rng *rand.Rand, age int, testType string, positionFactor float64) int {
	min, max := 20, 50
	switch testType {
	case TestType6030:
		min, max = 15, 45
	case TestType3060:
		min, max = 25, 55
	}

	ageFactor := 1.0
	switch {
	case age < 12:
		ageFactor = 0.6
	case age < 16:
		ageFactor = 0.8
	case age < 18:
		ageFactor = 0.9
	case age <= 25:
		ageFactor = 1.0
	case age <= 35:
		ageFactor = 0.9
	default:
		ageFactor = 0.8
	}

	lo := int(float64(min) * ageFactor * positionFactor)
	hi := int(float64(max) * ageFactor * positionFactor)
	if hi <= lo {
		hi = lo + 1
	}

	score := lo + rng.Intn(hi-lo)
	if score < 1 {
		score = 1
	}
	return score
}
