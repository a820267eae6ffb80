// Package i18n holds the human-readable protocol text shown to agents.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys for protocol results.
const (
	KeyStartOK        = "tool.start.ok"
	KeyMoveOK         = "tool.move.ok"
	KeyMoveCheck      = "tool.move.check"
	KeyMoveGameOver   = "tool.move.game_over"
	KeyMoveInvalid    = "tool.move.invalid"
	KeyMoveFinished   = "tool.move.finished"
	KeyPollReceived   = "tool.poll.received"
	KeyPollWaiting    = "tool.poll.waiting"
	KeyPollGameOver   = "tool.poll.game_over"
	KeyFinishOK       = "tool.finish.ok"
	KeyFinishNotFound = "tool.finish.not_found"
	KeyNextSubmit     = "next.submit_move"
	KeyNextPoll       = "next.poll_human_move"
	KeyNextFinish     = "next.finish"
)

// Status labels, keyed "status." + game status.
const (
	KeyStatusOngoing   = "status.ongoing"
	KeyStatusCheck     = "status.check"
	KeyStatusCheckmate = "status.checkmate"
	KeyStatusStalemate = "status.stalemate"
	KeyStatusDraw      = "status.draw"
)

var supportedTags = []language.Tag{
	language.English,
	language.MustParse("pt-BR"),
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// ParseTag matches a locale string such as "pt-BR" or "en-US" against the
// supported tags, falling back to Default.
func ParseTag(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default()
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return Default()
	}
	_, index, confidence := tagMatcher.Match(parsed)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
