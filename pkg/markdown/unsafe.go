package markdown

// fullPhrasingSpans are constructs whose content is not parsed as phrasing.
var fullPhrasingSpans = []string{
	"autolink",
	"destinationLiteral",
	"destinationRaw",
	"reference",
	"titleQuote",
	"titleApostrophe",
}

var (
	phrasing       = []string{"phrasing"}
	labelReference = []string{"label", "reference"}
)

// defaultUnsafe lists where CommonMark text would be misread if written
// unescaped.
var defaultUnsafe = []Unsafe{
	{Character: '\t', After: `[\r\n]`, InConstruct: phrasing},
	{Character: '\t', Before: `[\r\n]`, InConstruct: phrasing},
	{Character: ' ', After: `[\r\n]`, InConstruct: phrasing},
	{Character: ' ', Before: `[\r\n]`, InConstruct: phrasing},
	{Character: '!', After: `\[`, InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
	{Character: '#', AtBreak: true},
	{Character: '&', After: `[#A-Za-z]`, InConstruct: phrasing},
	{Character: '(', Before: `\]`, InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
	{Character: ')', AtBreak: true, Before: `\d+`},
	{Character: '*', AtBreak: true, After: `(?:[ \t\r\n*])`},
	{Character: '*', InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
	{Character: '+', AtBreak: true, After: `(?:[ \t\r\n])`},
	{Character: '-', AtBreak: true, After: `(?:[ \t\r\n-])`},
	{Character: '.', AtBreak: true, Before: `\d+`, After: `(?:[ \t\r\n]|$)`},
	{Character: '<', AtBreak: true, After: `[!/?A-Za-z]`},
	{Character: '<', After: `[!/?A-Za-z]`, InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
	{Character: '=', AtBreak: true},
	{Character: '>', AtBreak: true},
	{Character: '[', AtBreak: true},
	{Character: '[', InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
	{Character: '[', InConstruct: labelReference},
	{Character: '\\', After: `[\r\n]`, InConstruct: phrasing},
	{Character: ']', InConstruct: labelReference},
	{Character: '_', AtBreak: true},
	{Character: '_', InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
	{Character: '`', AtBreak: true},
	{Character: '`', InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
	{Character: '~', AtBreak: true},
}
