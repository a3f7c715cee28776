package catalog

import "github.com/verte-zerg/codetype/internal/model"

var builtin = []model.Snippet{
	{Lang: model.LanguagePython, Text: "def greet(name):\n    return f\"Hello, {name}!\""},
	{Lang: model.LanguagePython, Text: "for i in range(5):\n    print(i)"},
	{Lang: model.LanguagePython, Text: "class Person:\n    def __init__(self, name):\n        self.name = name"},
	{Lang: model.LanguagePython, Text: "def factorial(n):\n    if n == 0:\n        return 1\n    else:\n        return n * factorial(n-1)"},

	{Lang: model.LanguageJavaScript, Text: "function greet(name) {\n    return `Hello, ${name}`;\n}"},
	{Lang: model.LanguageJavaScript, Text: "for (let i = 0; i < 5; i++) {\n    console.log(i);\n}"},
	{Lang: model.LanguageJavaScript, Text: "class Person {\n    constructor(name) {\n        this.name = name;\n    }\n}"},

	{Lang: model.LanguageCpp, Text: "#include<iostream>\nusing namespace std;\nint main() {\n    cout << \"Hello\";\n    return 0;\n}"},
	{Lang: model.LanguageCpp, Text: "for (int i = 0; i < 10; i++) {\n    cout << i << endl;\n}"},

	{Lang: model.LanguageGo, Text: "func greet(name string) string {\n\treturn fmt.Sprintf(\"Hello, %s!\", name)\n}"},
	{Lang: model.LanguageGo, Text: "for i := 0; i < 5; i++ {\n\tfmt.Println(i)\n}"},
	{Lang: model.LanguageGo, Text: "if err != nil {\n\treturn fmt.Errorf(\"open: %w\", err)\n}"},
}

// Builtin returns a copy of the snippets shipped with the program.
func Builtin() []model.Snippet {
	out := make([]model.Snippet, len(builtin))
	copy(out, builtin)
	return out
}
