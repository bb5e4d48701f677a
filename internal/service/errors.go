package service

import "errors"

// Credential and token failures share deliberately indistinct messages so a
// caller cannot tell "wrong password" from "no such user", nor "expired"
// from "tampered".
var (
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrInvalidCredentials     = errors.New("credenciais inválidas")
	ErrInvalidToken           = errors.New("token inválido ou expirado")
	ErrEmailAlreadyRegistered = errors.New("e-mail já está em uso")
	ErrUserInactive           = errors.New("usuário inativo ou bloqueado")
	ErrRemoteUserWithoutEmail = errors.New("identidade remota sem e-mail associado")
	ErrNotFound               = errors.New("recurso não encontrado")
	ErrDuplicateRecord        = errors.New("registro em conflito")
)
