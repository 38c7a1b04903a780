package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu       sync.Mutex
	objetos  map[string]string
	borrados []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objetos: make(map[string]string)}
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objetos[key] = contentType
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objetos, key)
	f.borrados = append(f.borrados, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func crearJugadorConUsuario(t *testing.T, repos *fakeJugadorRepo, usuarios *fakeUsuarioRepo, email string) *models.Jugador {
	t.Helper()
	usuario := &models.Usuario{Email: email, Nombre: "Jugador", Rol: models.RolJugador, Activo: true}
	require.NoError(t, usuarios.Create(context.Background(), nil, usuario))
	jugador := &models.Jugador{UsuarioID: usuario.ID, Usuario: usuario}
	require.NoError(t, repos.Create(context.Background(), nil, jugador))
	return jugador
}

func TestObtenerPorUsuario(t *testing.T) {
	jugadorRepo := newFakeJugadorRepo()
	usuarioRepo := newFakeUsuarioRepo()
	creado := crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "maria@club.es")

	svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(), nil)

	jugador, err := svc.ObtenerPorUsuario(context.Background(), creado.UsuarioID)

	require.NoError(t, err)
	assert.Equal(t, creado.ID, jugador.ID)

	_, err = svc.ObtenerPorUsuario(context.Background(), 999)
	assert.ErrorIs(t, err, ErrJugadorNotFound)
}

func TestCambiarEstado(t *testing.T) {
	jugadorRepo := newFakeJugadorRepo()
	usuarioRepo := newFakeUsuarioRepo()
	creado := crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "maria@club.es")

	svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(), nil)

	jugador, err := svc.CambiarEstado(context.Background(), creado.ID, false)

	require.NoError(t, err)
	assert.False(t, jugador.Usuario.Activo)

	usuario, err := usuarioRepo.GetByID(context.Background(), creado.UsuarioID)
	require.NoError(t, err)
	assert.False(t, usuario.Activo)
}

func TestCambiarEstadoJugadorInexistente(t *testing.T) {
	svc := NewJugadorService(newFakeJugadorRepo(), newFakeUsuarioRepo(), newFakePosicionRepo(), nil)

	_, err := svc.CambiarEstado(context.Background(), 42, false)

	assert.ErrorIs(t, err, ErrJugadorNotFound)
}

func TestActualizarFotoSinUploader(t *testing.T) {
	svc := NewJugadorService(newFakeJugadorRepo(), newFakeUsuarioRepo(), newFakePosicionRepo(), nil)

	_, err := svc.ActualizarFoto(context.Background(), 1, 1, false, strings.NewReader("png"), "image/png")

	assert.ErrorIs(t, err, ErrFotoNoDisponible)
}

func TestActualizarFotoPropia(t *testing.T) {
	jugadorRepo := newFakeJugadorRepo()
	usuarioRepo := newFakeUsuarioRepo()
	creado := crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "maria@club.es")
	uploader := newFakeUploader()

	svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(), uploader)

	jugador, err := svc.ActualizarFoto(context.Background(), creado.ID, creado.UsuarioID, false, strings.NewReader("png"), "image/png")

	require.NoError(t, err)
	require.NotNil(t, jugador.FotoKey)
	assert.True(t, strings.HasSuffix(*jugador.FotoKey, ".png"))
	require.NotNil(t, jugador.FotoURL)
	assert.Equal(t, uploader.GetPublicURL(*jugador.FotoKey), *jugador.FotoURL)
	assert.Len(t, uploader.objetos, 1)
}

func TestActualizarFotoReemplazaLaAnterior(t *testing.T) {
	jugadorRepo := newFakeJugadorRepo()
	usuarioRepo := newFakeUsuarioRepo()
	creado := crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "maria@club.es")
	uploader := newFakeUploader()

	viejaKey := "jugadores/antigua.jpg"
	require.NoError(t, jugadorRepo.UpdateFotoKey(context.Background(), creado.ID, &viejaKey))

	svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(), uploader)

	_, err := svc.ActualizarFoto(context.Background(), creado.ID, creado.UsuarioID, false, strings.NewReader("jpg"), "image/jpeg")

	require.NoError(t, err)
	assert.Contains(t, uploader.borrados, viejaKey)
}

func TestActualizarFotoDeOtroJugador(t *testing.T) {
	jugadorRepo := newFakeJugadorRepo()
	usuarioRepo := newFakeUsuarioRepo()
	creado := crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "maria@club.es")
	uploader := newFakeUploader()

	svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(), uploader)

	otroUsuarioID := creado.UsuarioID + 100

	_, err := svc.ActualizarFoto(context.Background(), creado.ID, otroUsuarioID, false, strings.NewReader("png"), "image/png")
	assert.ErrorIs(t, err, ErrOperacionNoPermitida)

	// Un gestor sí puede cambiar la foto de cualquier jugador.
	_, err = svc.ActualizarFoto(context.Background(), creado.ID, otroUsuarioID, true, strings.NewReader("png"), "image/png")
	assert.NoError(t, err)
}

func TestActualizarJugadorFicha(t *testing.T) {
	jugadorRepo := newFakeJugadorRepo()
	usuarioRepo := newFakeUsuarioRepo()
	creado := crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "maria@club.es")

	svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(2), nil)

	dorsal := 7
	posicion := 2
	alias := "Lopi"
	nacimiento := "2001-05-17"

	jugador, err := svc.Actualizar(context.Background(), creado.ID, creado.UsuarioID, false, ActualizarJugadorInput{
		NumeroDorsal:    &dorsal,
		PosicionID:      &posicion,
		Alias:           &alias,
		FechaNacimiento: &nacimiento,
	})

	require.NoError(t, err)
	require.NotNil(t, jugador.NumeroDorsal)
	assert.Equal(t, 7, *jugador.NumeroDorsal)
	require.NotNil(t, jugador.Posicion)
	assert.Equal(t, 2, jugador.Posicion.ID)
	require.NotNil(t, jugador.FechaNacimiento)
	assert.Equal(t, 2001, jugador.FechaNacimiento.Year())

	persistido, err := jugadorRepo.GetByID(context.Background(), creado.ID)
	require.NoError(t, err)
	require.NotNil(t, persistido.NumeroDorsal)
	assert.Equal(t, 7, *persistido.NumeroDorsal)
}

func TestActualizarJugadorCambiaCuenta(t *testing.T) {
	jugadorRepo := newFakeJugadorRepo()
	usuarioRepo := newFakeUsuarioRepo()
	usuario := &models.Usuario{
		Email:        "maria@club.es",
		PasswordHash: "hash-secreto",
		Nombre:       "María",
		Rol:          models.RolJugador,
		Activo:       true,
	}
	require.NoError(t, usuarioRepo.Create(context.Background(), nil, usuario))
	jugador := &models.Jugador{UsuarioID: usuario.ID, Usuario: usuario}
	require.NoError(t, jugadorRepo.Create(context.Background(), nil, jugador))

	svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(), nil)

	nombre := "María López"
	email := "Maria.Lopez@Club.ES"

	actualizado, err := svc.Actualizar(context.Background(), jugador.ID, usuario.ID, false, ActualizarJugadorInput{
		Nombre: &nombre,
		Email:  &email,
	})

	require.NoError(t, err)
	require.NotNil(t, actualizado.Usuario)
	assert.Equal(t, "María López", actualizado.Usuario.Nombre)
	assert.Equal(t, "maria.lopez@club.es", actualizado.Usuario.Email)
	assert.Empty(t, actualizado.Usuario.PasswordHash)

	// La edición de nombre o email no toca la contraseña almacenada.
	persistido, err := usuarioRepo.GetByID(context.Background(), usuario.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash-secreto", persistido.PasswordHash)
	assert.Equal(t, "maria.lopez@club.es", persistido.Email)
}

func TestActualizarJugadorDeOtro(t *testing.T) {
	jugadorRepo := newFakeJugadorRepo()
	usuarioRepo := newFakeUsuarioRepo()
	creado := crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "maria@club.es")

	svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(), nil)

	dorsal := 9
	otroUsuarioID := creado.UsuarioID + 100

	_, err := svc.Actualizar(context.Background(), creado.ID, otroUsuarioID, false, ActualizarJugadorInput{NumeroDorsal: &dorsal})
	assert.ErrorIs(t, err, ErrOperacionNoPermitida)

	// Un gestor sí puede editar cualquier ficha.
	_, err = svc.Actualizar(context.Background(), creado.ID, otroUsuarioID, true, ActualizarJugadorInput{NumeroDorsal: &dorsal})
	assert.NoError(t, err)
}

func TestActualizarJugadorValidaciones(t *testing.T) {
	vacio := ""
	mal := "17/05/2001"
	invalido := "no-es-email"
	posicion := 99

	tests := []struct {
		name  string
		input ActualizarJugadorInput
	}{
		{"nombre vacío", ActualizarJugadorInput{Nombre: &vacio}},
		{"email inválido", ActualizarJugadorInput{Email: &invalido}},
		{"fecha de nacimiento inválida", ActualizarJugadorInput{FechaNacimiento: &mal}},
		{"posición inexistente", ActualizarJugadorInput{PosicionID: &posicion}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jugadorRepo := newFakeJugadorRepo()
			usuarioRepo := newFakeUsuarioRepo()
			creado := crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "maria@club.es")

			svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(1), nil)

			_, err := svc.Actualizar(context.Background(), creado.ID, creado.UsuarioID, false, tt.input)

			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestActualizarJugadorEmailEnUso(t *testing.T) {
	jugadorRepo := newFakeJugadorRepo()
	usuarioRepo := newFakeUsuarioRepo()
	crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "ocupado@club.es")
	creado := crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "maria@club.es")

	svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(), nil)

	email := "ocupado@club.es"
	_, err := svc.Actualizar(context.Background(), creado.ID, creado.UsuarioID, false, ActualizarJugadorInput{Email: &email})

	assert.ErrorIs(t, err, ErrEmailEnUso)
}

func TestActualizarFotoContentTypeNoSoportado(t *testing.T) {
	jugadorRepo := newFakeJugadorRepo()
	usuarioRepo := newFakeUsuarioRepo()
	creado := crearJugadorConUsuario(t, jugadorRepo, usuarioRepo, "maria@club.es")

	svc := NewJugadorService(jugadorRepo, usuarioRepo, newFakePosicionRepo(), newFakeUploader())

	_, err := svc.ActualizarFoto(context.Background(), creado.ID, creado.UsuarioID, false, strings.NewReader("pdf"), "application/pdf")

	assert.ErrorIs(t, err, ErrValidationFailed)
}
