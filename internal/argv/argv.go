// Package argv converts argument lists to and from single command lines.
//
// The quoting rules follow the Microsoft C runtime argv parser (the one used by
// CommandLineToArgvW), which is what the viewer parses its command line with.
package argv

import "strings"

const (
	argumentSeparator = ' '
	quoteCharacter    = '"'
	escapeCharacter   = '\\'
	// quotingTriggers lists characters that force an argument into quotes.
	quotingTriggers = " \t\n\v\""
)

// Encode joins arguments into one command line such that Split(Encode(arguments))
// reproduces arguments exactly.
func Encode(arguments []string) string {
	var builder strings.Builder
	for argumentIndex, argument := range arguments {
		if argumentIndex > 0 {
			builder.WriteByte(argumentSeparator)
		}
		writeArgument(&builder, argument)
	}
	return builder.String()
}

func writeArgument(builder *strings.Builder, argument string) {
	if argument != "" && !strings.ContainsAny(argument, quotingTriggers) {
		builder.WriteString(argument)
		return
	}
	builder.WriteByte(quoteCharacter)
	pendingBackslashes := 0
	for byteIndex := 0; byteIndex < len(argument); byteIndex++ {
		currentByte := argument[byteIndex]
		switch currentByte {
		case escapeCharacter:
			pendingBackslashes++
		case quoteCharacter:
			// Backslashes before a quote are doubled and the quote itself is escaped.
			writeBackslashes(builder, 2*pendingBackslashes+1)
			builder.WriteByte(quoteCharacter)
			pendingBackslashes = 0
		default:
			writeBackslashes(builder, pendingBackslashes)
			builder.WriteByte(currentByte)
			pendingBackslashes = 0
		}
	}
	// Trailing backslashes precede the closing quote.
	writeBackslashes(builder, 2*pendingBackslashes)
	builder.WriteByte(quoteCharacter)
}

func writeBackslashes(builder *strings.Builder, count int) {
	for index := 0; index < count; index++ {
		builder.WriteByte(escapeCharacter)
	}
}

// Split tokenizes a command line using the same rules Encode targets.
func Split(commandLine string) []string {
	arguments := []string{}
	var current strings.Builder
	insideQuotes := false
	tokenStarted := false
	position := 0
	for position < len(commandLine) {
		currentByte := commandLine[position]
		switch {
		case (currentByte == ' ' || currentByte == '\t') && !insideQuotes:
			if tokenStarted {
				arguments = append(arguments, current.String())
				current.Reset()
				tokenStarted = false
			}
			position++
		case currentByte == escapeCharacter:
			backslashCount := 0
			for position+backslashCount < len(commandLine) && commandLine[position+backslashCount] == escapeCharacter {
				backslashCount++
			}
			nextPosition := position + backslashCount
			tokenStarted = true
			if nextPosition < len(commandLine) && commandLine[nextPosition] == quoteCharacter {
				writeBackslashes(&current, backslashCount/2)
				if backslashCount%2 == 1 {
					current.WriteByte(quoteCharacter)
					position = nextPosition + 1
				} else {
					position = nextPosition
				}
				continue
			}
			writeBackslashes(&current, backslashCount)
			position = nextPosition
		case currentByte == quoteCharacter:
			tokenStarted = true
			if insideQuotes && position+1 < len(commandLine) && commandLine[position+1] == quoteCharacter {
				current.WriteByte(quoteCharacter)
				position += 2
				continue
			}
			insideQuotes = !insideQuotes
			position++
		default:
			current.WriteByte(currentByte)
			tokenStarted = true
			position++
		}
	}
	if tokenStarted {
		arguments = append(arguments, current.String())
	}
	return arguments
}
