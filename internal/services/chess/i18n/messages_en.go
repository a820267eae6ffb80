package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, KeyStartOK, "New game started. You play white; make the first move.")
	message.SetString(lang, KeyMoveOK, "Moved %s.")
	message.SetString(lang, KeyMoveCheck, "Moved %s. Check!")
	message.SetString(lang, KeyMoveGameOver, "Moved %s. Game over: %s.")
	message.SetString(lang, KeyMoveInvalid, "Invalid move %s. Try another move.")
	message.SetString(lang, KeyMoveFinished, "Game already finished.")
	message.SetString(lang, KeyPollReceived, "User has made a move: %s. Submit it next.")
	message.SetString(lang, KeyPollWaiting, "Waiting for user move. Poll again.")
	message.SetString(lang, KeyPollGameOver, "Game over: %s.")
	message.SetString(lang, KeyFinishOK, "Game finished.")
	message.SetString(lang, KeyFinishNotFound, "Game not found.")

	message.SetString(lang, KeyNextSubmit, "the agent moves next")
	message.SetString(lang, KeyNextPoll, "waiting for the human move")
	message.SetString(lang, KeyNextFinish, "the game has ended")

	message.SetString(lang, KeyStatusOngoing, "in progress")
	message.SetString(lang, KeyStatusCheck, "check")
	message.SetString(lang, KeyStatusCheckmate, "checkmate")
	message.SetString(lang, KeyStatusStalemate, "stalemate")
	message.SetString(lang, KeyStatusDraw, "draw")
}
