package i18n

// Default returns the English and Hindi tables used by the bot.
func Default() *Table {
	return New(
		[]Language{
			{Code: "en", Label: "🇬🇧 English"},
			{Code: "hi", Label: "🇮🇳 हिंदी"},
		},
		map[string]map[Key]string{
			"en": english,
			"hi": hindi,
		},
	)
}

var english = map[Key]string{
	Welcome:        "🎓 Welcome to Question Paper Bot!\n\nI can help you download previous year question papers for Classes 6-12.\n\nChoose your preferred language:",
	LanguageSet:    "✅ Language set to English\n\nLet's get started! Choose your class:",
	ChooseClass:    "📚 Choose your class:",
	ChooseSubject:  "📖 Choose your subject for Class {class}:",
	ChooseYear:     "📅 Choose the year for {subject} - Class {class}:",
	ClassButton:    "Class {class}",
	DownloadLink:   "📥 Here's your download link:\n\n📄 {subject} - Class {class} ({year})\n\n🔗 [Download PDF]({url})",
	PaperNotFound:  "❌ Sorry, this paper is not available yet.",
	MainMenu:       "🏠 Main Menu",
	Back:           "⬅️ Back",
	Search:         "🔍 Search",
	SearchPrompt:   "🔍 Enter your search query (e.g., 'Math 2022 Class 10'):",
	SearchResults:  "🔍 Search Results for '{query}':",
	SearchResult:   "{subject} - Class {class} ({year})",
	NoResults:      "❌ No results found for '{query}'",
	AdminPanel:     "🛠️ Admin Panel",
	AdminWelcome:   "🛠️ Admin Panel\n\nChoose an action:",
	AddPaper:       "➕ Add Paper",
	ViewPapers:     "📋 View Papers",
	Unauthorized:   "❌ Unauthorized access!",
	UnauthorizedCB: "❌ Unauthorized!",
	AddPaperFormat: "To add a new paper, send the details in this format:\n\n`/add_paper Class|Subject|Year|FileURL`\n\nExample:\n`/add_paper 10|Mathematics|2024|class10/math/2024.pdf`\n\nClass and Year cannot contain `_`.",
	PaperAdded:     "✅ Paper added successfully!\n\nClass: {class}\nSubject: {subject}\nYear: {year}",
	PaperAddError:  "❌ Error adding paper. Please check the format.",
	ViewHeader:     "📋 *Current Papers Database:*",
	ViewClass:      "*Class:* {class}",
	ViewSubject:    "  • {subject}: {count} papers ({years})",
	ViewTotal:      "*Total Papers: {total}*",
	UnknownText:    "Use /start to browse question papers.",
	SlowDown:       "⏳ Please wait a moment.",
}

// Admin summary lines are left to the English fallback.
var hindi = map[Key]string{
	Welcome:        "🎓 प्रश्न पत्र बॉट में आपका स्वागत है!\n\nमैं आपको कक्षा 6-12 के पिछले वर्ष के प्रश्न पत्र डाउनलोड करने में मदद कर सकता हूं।\n\nअपनी पसंदीदा भाषा चुनें:",
	LanguageSet:    "✅ भाषा हिंदी में सेट की गई\n\nचलिए शुरू करते हैं! अपनी कक्षा चुनें:",
	ChooseClass:    "📚 अपनी कक्षा चुनें:",
	ChooseSubject:  "📖 कक्षा {class} के लिए विषय चुनें:",
	ChooseYear:     "📅 {subject} - कक्षा {class} के लिए वर्ष चुनें:",
	ClassButton:    "कक्षा {class}",
	DownloadLink:   "📥 यहाँ आपका डाउनलोड लिंक है:\n\n📄 {subject} - कक्षा {class} ({year})\n\n🔗 [PDF डाउनलोड करें]({url})",
	PaperNotFound:  "❌ क्षमा करें, यह प्रश्न पत्र अभी तक उपलब्ध नहीं है।",
	MainMenu:       "🏠 मुख्य मेनू",
	Back:           "⬅️ वापस",
	Search:         "🔍 खोजें",
	SearchPrompt:   "🔍 अपनी खोज क्वेरी दर्ज करें (जैसे 'गणित 2022 कक्षा 10'):",
	SearchResults:  "🔍 '{query}' के लिए खोज परिणाम:",
	SearchResult:   "{subject} - कक्षा {class} ({year})",
	NoResults:      "❌ '{query}' के लिए कोई परिणाम नहीं मिला",
	AdminPanel:     "🛠️ एडमिन पैनल",
	AdminWelcome:   "🛠️ एडमिन पैनल\n\nकोई कार्य चुनें:",
	AddPaper:       "➕ प्रश्न पत्र जोड़ें",
	ViewPapers:     "📋 प्रश्न पत्र देखें",
	Unauthorized:   "❌ अनधिकृत पहुंच!",
	AddPaperFormat: "नया प्रश्न पत्र जोड़ने के लिए, इस प्रारूप में विवरण भेजें:\n\n`/add_paper Class|Subject|Year|FileURL`\n\nउदाहरण:\n`/add_paper 10|Mathematics|2024|class10/math/2024.pdf`\n\nClass और Year में `_` नहीं हो सकता।",
	PaperAdded:     "✅ प्रश्न पत्र सफलतापूर्वक जोड़ा गया!\n\nकक्षा: {class}\nविषय: {subject}\nवर्ष: {year}",
	PaperAddError:  "❌ प्रश्न पत्र जोड़ने में त्रुटि। कृपया प्रारूप जांचें।",
	UnknownText:    "प्रश्न पत्र देखने के लिए /start भेजें।",
	SlowDown:       "⏳ कृपया थोड़ा रुकें।",
}
