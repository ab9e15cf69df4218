package store

import (
	"log/slog"

	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

// Seed loads the starter catalog: four categories, three books, one
// audiobook and six shop products. It does nothing if categories already
// exist. Concurrent calls seed once.
func Seed(db *DB) {
	db.seedMu.Lock()
	defer db.seedMu.Unlock()

	db.mu.RLock()
	seeded := db.categories.len() > 0
	db.mu.RUnlock()

	if seeded {
		slog.Info("catalog already seeded, skipping")
		return
	}

	categories := NewCategoryStore(db)
	for _, c := range seedCategories {
		categories.Create(c)
	}

	books := NewBookStore(db)
	for _, b := range seedBooks {
		books.Create(b)
	}

	audioBooks := NewAudioBookStore(db)
	for _, a := range seedAudioBooks {
		audioBooks.Create(a)
	}

	products := NewProductStore(db)
	for _, p := range seedProducts {
		products.Create(p)
	}

	slog.Info("catalog seeded",
		"categories", len(seedCategories),
		"books", len(seedBooks),
		"audiobooks", len(seedAudioBooks),
		"products", len(seedProducts),
	)
}

func ptr[T any](v T) *T { return &v }

var seedCategories = []models.CategoryInput{
	{Name: "Сказки", Description: ptr("Волшебные истории для детей"), Icon: "🏰"},
	{Name: "Приключения", Description: ptr("Захватывающие приключения"), Icon: "🗺️"},
	{Name: "Обучающие", Description: ptr("Полезные и познавательные книги"), Icon: "📚"},
	{Name: "Стихи", Description: ptr("Детские стихотворения"), Icon: "🎭"},
}

var seedBooks = []models.BookInput{
	{
		Title:       "Колобок",
		Author:      "Русская народная сказка",
		Description: ptr("Классическая русская сказка о приключениях колобка"),
		CoverImage:  ptr("/kolobok-cover.webp"),
		Price:       ptr(0),
		Content:     kolobokText,
		CategoryID:  ptr(1),
		AgeGroup:    "3-6",
		ReadingTime: ptr(20),
	},
	{
		Title:       "Репка",
		Author:      "Русская народная сказка",
		Description: ptr("Сказка о дружбе и взаимопомощи"),
		CoverImage:  ptr("https://via.placeholder.com/200x300/FDE047/000000?text=Репка"),
		Price:       ptr(0),
		Content:     repkaText,
		CategoryID:  ptr(1),
		AgeGroup:    "2-5",
		ReadingTime: ptr(15),
	},
	{
		Title:       "Буратино",
		Author:      "Алексей Толстой",
		Description: ptr("Приключения деревянного мальчика"),
		CoverImage:  ptr("https://via.placeholder.com/200x300/1E3A8A/ffffff?text=Буратино"),
		Price:       ptr(19900),
		Content:     buratinoText,
		CategoryID:  ptr(2),
		AgeGroup:    "6-10",
		IsPremium:   true,
		ReadingTime: ptr(45),
	},
}

var seedAudioBooks = []models.AudioBookInput{
	{
		Title:       "Автомобиль",
		Author:      "Носов Н.Н.",
		Description: ptr("Детская аудиокнига о приключениях с автомобилем"),
		CoverImage:  ptr("/avtomobil-cover.webp"),
		AudioURL:    "/avtomobil-audio.mp3",
		Duration:    293,
		CategoryID:  ptr(1),
		AgeGroup:    "3-8",
		IsPremium:   true,
		Price:       ptr(24999),
		Narrator:    ptr("Профессиональный диктор"),
	},
}

var seedProducts = []models.ShopProductInput{
	{
		Name:        "Футболка RIZY LAND детская",
		Description: "Мягкая хлопковая футболка с логотипом RIZY LAND для юных читателей",
		Price:       129900,
		Category:    "Одежда",
		Stock:       50,
	},
	{
		Name:        "Худи RIZY LAND с капюшоном",
		Description: "Уютное худи для детей с яркими принтами из любимых книг",
		Price:       249900,
		Category:    "Одежда",
		Stock:       30,
	},
	{
		Name:        "Закладка магнитная \"Колобок\"",
		Description: "Красочная магнитная закладка с героями из популярной сказки",
		Price:       19900,
		Category:    "Канцелярия",
		Stock:       100,
	},
	{
		Name:        "Блокнот \"Мои истории\" A5",
		Description: "Красивый блокнот для записей и рисунков с мотивами из детских книг",
		Price:       79900,
		Category:    "Канцелярия",
		Stock:       75,
	},
	{
		Name:        "Кружка \"Герои сказок\"",
		Description: "Яркая детская кружка с любимыми персонажами из книг RIZY LAND",
		Price:       69900,
		Category:    "Подарки",
		Stock:       40,
	},
	{
		Name:        "Рюкзак детский \"Приключения\"",
		Description: "Удобный рюкзак для школы и прогулок с яркими иллюстрациями",
		Price:       189900,
		Category:    "Аксессуары",
		Stock:       25,
	},
}

const kolobokText = `Жили-были дед да баба. Вот просит дед бабу испечь колобок. Баба по коробу поскребла, по сусеку помела, набрала муки горсти две. Замесила тесто на сметане, скатала колобок, изжарила в масле и положила на окошко остывать.

Колобок полежал-полежал, да вдруг и покатился — с окна на лавку, с лавки на пол, по полу к двери, прыг через порог в сени, из сеней на крыльцо, с крыльца на двор, со двора за ворота, дальше и дальше.

<div style="text-align: center; margin: 20px 0;">
<img src="/book-cover-1.webp" alt="Колобок катится по дороге" style="width: 100%; max-width: 350px; height: auto; border-radius: 12px; box-shadow: 0 4px 12px rgba(0,0,0,0.15);" />
</div>

Катится колобок по дороге, а навстречу ему заяц: "Колобок, колобок! Я тебя съем!" — "Не ешь меня, заяц! Я тебе песенку спою". И запел: "Я колобок, колобок! По коробу скребён, по сусеку метён, на сметане мешан, в печку сажён, на окошке стужён. Я от дедушки ушёл, я от бабушки ушёл, от тебя, зайца, не хитро уйти!"

И покатился колобок дальше — только заяц его и видел! Катится колобок по дороге, а навстречу ему волк: "Колобок, колобок! Я тебя съем!" — "Не ешь меня, волк! Я тебе песенку спою". И запел: "Я колобок, колобок! По коробу скребён, по сусеку метён, на сметане мешан, в печку сажён, на окошке стужён. Я от дедушки ушёл, я от бабушки ушёл, я от зайца ушёл, от тебя, волка, не хитро уйти!"

И покатился колобок дальше — только волк его и видел! Катится колобок по дороге, а навстречу ему медведь: "Колобок, колобок! Я тебя съем!" — "Не ешь меня, медведь! Я тебе песенку спою". И запел колобок: "Я колобок, колобок! По коробу скребён, по сусеку метён, на сметане мешан, в печку сажён, на окошке стужён. Я от дедушки ушёл, я от бабушки ушёл, я от зайца ушёл, я от волка ушёл, от тебя, медведь, не хитро уйти!"

И покатился колобок дальше — только медведь его и видел! Катится колобок по дороге, а навстречу ему лиса: "Здравствуй, колобок! Какой ты пригожий, какой ты румяный!" Колобок обрадовался, что его похвалили, и запел свою песенку. А лиса и говорит: "Какая славная песня! Только я, колобок, стара стала, плохо слышу. Сядь ко мне на мордочку да спой ещё разочек". Колобок обрадовался, что его песенку похвалили, прыгнул лисе на мордочку и запел. А лиса — ам! — и съела колобка.`

const repkaText = `Посадил дед репку. Выросла репка большая-пребольшая. Пошёл дед репку рвать: тянет-потянет, вытянуть не может!

Позвал дед бабку. Бабка за дедку, дедка за репку — тянут-потянут, вытянуть не могут!

Позвала бабка внучку. Внучка за бабку, бабка за дедку, дедка за репку — тянут-потянут, вытянуть не могут!

Позвала внучка Жучку. Жучка за внучку, внучка за бабку, бабка за дедку, дедка за репку — тянут-потянут, вытянуть не могут!

Позвала Жучка кошку. Кошка за Жучку, Жучка за внучку, внучка за бабку, бабка за дедку, дедка за репку — тянут-потянут, вытянуть не могут!

Позвала кошка мышка. Мышка за кошку, кошка за Жучку, Жучка за внучку, внучка за бабку, бабка за дедку, дедка за репку — тянут-потянут — вытянули репку!`

const buratinoText = `В одном городе жил старый шарманщик по имени Карло. Целый день он играл на шарманке и зарабатывал себе на хлеб. Жил он в каморке под лестницей.

Однажды, сидя перед очагом и размышляя о своей бедности, старый Карло услышал тоненький голосок: "Ой, ой, ой! Отпусти меня!" Карло удивился: "Кто это говорит?" Осмотрел каморку — никого нет.

Вдруг полено, которое лежало у очага, само собой зашевелилось. "Это очень странно, — подумал Карло. — Но из этого полена можно вырезать куклу и показывать с ней представления. Тогда я заработаю больше денег."

Взял Карло нож и начал строгать полено. Только срезал первую стружку — полено закричало: "Ой, как больно!" Но Карло не испугался и продолжал мастерить. Вскоре у него получилась деревянная кукла — мальчик с длинным носом.

"Как назвать тебя?" — размышлял Карло. И тут же вспомнил: "Назову-ка я тебя Буратино! Это имя принесёт тебе счастье."

Едва Карло произнёс это имя, кукла ожила. Буратино вскочил на ноги, схватил молоток и принялся колотить по наковальне: тук-тук-тук!

"Папа Карло, я есть хочу!" — закричал Буратино. Карло дал ему корочку хлеба. Буратино съел её в один миг и сказал: "Теперь я хочу в школу! Хочу стать умным и образованным!"

Эти слова так обрадовали папу Карло, что он решил продать свою куртку и купить для Буратино азбуку. На следующий день Буратино с азбукой под мышкой отправился в школу. Но по дороге его ждали удивительные приключения...`
