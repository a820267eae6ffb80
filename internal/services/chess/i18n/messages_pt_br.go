package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	message.SetString(lang, KeyStartOK, "Nova partida iniciada. Você joga com as brancas; faça o primeiro lance.")
	message.SetString(lang, KeyMoveOK, "Lance %s.")
	message.SetString(lang, KeyMoveCheck, "Lance %s. Xeque!")
	message.SetString(lang, KeyMoveGameOver, "Lance %s. Fim de jogo: %s.")
	message.SetString(lang, KeyMoveInvalid, "Lance inválido %s. Tente outro lance.")
	message.SetString(lang, KeyMoveFinished, "A partida já terminou.")
	message.SetString(lang, KeyPollReceived, "O usuário fez um lance: %s. Envie-o a seguir.")
	message.SetString(lang, KeyPollWaiting, "Aguardando o lance do usuário. Consulte novamente.")
	message.SetString(lang, KeyPollGameOver, "Fim de jogo: %s.")
	message.SetString(lang, KeyFinishOK, "Partida encerrada.")
	message.SetString(lang, KeyFinishNotFound, "Partida não encontrada.")

	message.SetString(lang, KeyNextSubmit, "o agente joga a seguir")
	message.SetString(lang, KeyNextPoll, "aguardando o lance humano")
	message.SetString(lang, KeyNextFinish, "a partida terminou")

	message.SetString(lang, KeyStatusOngoing, "em andamento")
	message.SetString(lang, KeyStatusCheck, "xeque")
	message.SetString(lang, KeyStatusCheckmate, "xeque-mate")
	message.SetString(lang, KeyStatusStalemate, "afogamento")
	message.SetString(lang, KeyStatusDraw, "empate")
}
