package documents

// Fixture maps relative file names to plain-text contents.
type Fixture map[string]string

// FixtureThreeTopics holds one document each about invoices, medicine and
// cooking.
var FixtureThreeTopics = Fixture{
	"invoice.txt": "INVOICE #2024-117\nAmount due: 4500 EUR\nPayment within 30 days.",
	"checkup.txt": "Patient visited the doctor for an annual checkup. Blood pressure normal.",
	"soup.txt":    "Recipe: tomato soup. Ingredients: tomatoes, onion, garlic, basil.",
}

// FixtureMixedKinds holds one supported file per kind and files the
// scanner must ignore.
var FixtureMixedKinds = Fixture{
	"report.PDF":        "%PDF-1.4 not really a pdf",
	"notes.txt":         "meeting notes",
	"sub/letter.docx":   "not really a docx",
	"sub/photo.jpg":     "jpeg bytes",
	"sub/deep/todo.TXT": "buy milk",
	"README.md":         "# readme",
}
