package occurrences

import (
	"context"
	"errors"
	"testing"

	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/BearBump/DriverBox/internal/i18n"
	"github.com/BearBump/DriverBox/internal/integrations/camera/fake"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/BearBump/DriverBox/internal/notify"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	occurrencesmocks "github.com/BearBump/DriverBox/internal/services/occurrences/mocks"
)

type navSpy struct{ completed int }

func (n *navSpy) Complete() { n.completed++ }

var photo = capture.Frame{ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}.DataURL()

type FlowSuite struct {
	suite.Suite

	sub    *occurrencesmocks.MockSubmitter
	outbox *notify.Outbox
	nav    *navSpy
	cam    *fake.Camera
	flow   *Flow
}

func (s *FlowSuite) SetupTest() {
	s.sub = &occurrencesmocks.MockSubmitter{}
	s.outbox = notify.NewOutbox()
	s.nav = &navSpy{}
	s.cam = fake.New("occ")
	s.flow = New(models.Delivery{ID: "6", Invoice: "NF-100006"}, Deps{
		Camera:    s.cam,
		Submitter: s.sub,
		Notifier:  s.outbox,
		Tr:        i18n.New(i18n.LanguageEN),
		Nav:       s.nav,
		NewID:     func() string { return "o-1" },
	})
}

func (s *FlowSuite) TestSubmit_TypeRequired() {
	_, err := s.flow.Submit(context.Background(), Form{Description: "broken glass"})
	var verr *models.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Require().Equal("type", verr.Field)
	s.Require().Equal("Select the type", s.outbox.Drain()[0].Title)

	_, err = s.flow.Submit(context.Background(), Form{Type: "stolen", Description: "x"})
	s.Require().ErrorAs(err, &verr)
	s.Require().Equal("type", verr.Field)
	s.Require().Zero(s.nav.completed)
}

func (s *FlowSuite) TestSubmit_DescriptionRequired() {
	_, err := s.flow.Submit(context.Background(), Form{Type: models.OccurrenceTypeDamage, Description: "\n\t "})
	var verr *models.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Require().Equal("description", verr.Field)
	s.Require().Equal("Description required", s.outbox.Drain()[0].Title)
	s.sub.AssertNotCalled(s.T(), "SubmitOccurrence", mock.Anything, mock.Anything)
}

func (s *FlowSuite) TestSubmit_OK_WithPhotos() {
	ok, err := s.flow.AddPhoto(photo)
	s.Require().NoError(err)
	s.Require().True(ok)

	s.Require().NoError(s.flow.StartCamera(context.Background()))
	ok, err = s.flow.CapturePhoto(context.Background())
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().Equal(int64(0), s.cam.OpenStreams())
	s.Require().Equal(capture.StateIdle, s.flow.CameraState())

	s.sub.On("SubmitOccurrence", mock.Anything, mock.MatchedBy(func(o models.Occurrence) bool {
		return o.ID == "o-1" && o.DeliveryID == "6" && o.Type == models.OccurrenceTypeDamage &&
			o.Description == "1 glass broken" && len(o.Photos) == 2 && o.Photos[0] == photo
	})).Return(models.SubmitResult{OK: true}, nil).Once()

	o, err := s.flow.Submit(context.Background(), Form{Type: models.OccurrenceTypeDamage, Description: " 1 glass broken "})
	s.Require().NoError(err)
	s.Require().Equal("o-1", o.ID)
	s.Require().Equal(1, s.nav.completed)

	toasts := s.outbox.Drain()
	s.Require().Len(toasts, 1)
	s.Require().Equal("The supervisor will be notified", toasts[0].Description)
	s.sub.AssertExpectations(s.T())
}

func (s *FlowSuite) TestSubmit_Failure() {
	s.sub.On("SubmitOccurrence", mock.Anything, mock.Anything).
		Return(models.SubmitResult{}, errors.New("timeout")).Once()

	_, err := s.flow.Submit(context.Background(), Form{Type: models.OccurrenceTypeOther, Description: "x"})
	s.Require().ErrorIs(err, ErrSubmitFailed)
	s.Require().Zero(s.nav.completed)
	s.Require().Equal(notify.KindError, s.outbox.Drain()[0].Kind)
}

func (s *FlowSuite) TestPhotoCap() {
	for i := 0; i < MaxPhotos; i++ {
		ok, err := s.flow.AddPhoto(photo)
		s.Require().NoError(err)
		s.Require().True(ok)
	}
	s.Require().False(s.flow.CanAddPhoto())

	ok, err := s.flow.AddPhoto(photo)
	s.Require().NoError(err)
	s.Require().False(ok)
	s.Require().Len(s.flow.Photos(), MaxPhotos)

	// camera capture beyond the cap releases the stream and attaches nothing
	s.Require().NoError(s.flow.StartCamera(context.Background()))
	ok, err = s.flow.CapturePhoto(context.Background())
	s.Require().NoError(err)
	s.Require().False(ok)
	s.Require().Equal(int64(0), s.cam.OpenStreams())

	s.Require().True(s.flow.RemovePhoto(0))
	s.Require().True(s.flow.CanAddPhoto())
	s.Require().False(s.flow.RemovePhoto(10))
	s.Require().False(s.flow.RemovePhoto(-1))
}

func (s *FlowSuite) TestAddPhoto_ReleasesActiveCamera() {
	s.Require().NoError(s.flow.StartCamera(context.Background()))
	s.Require().Equal(capture.StateCameraActive, s.flow.CameraState())

	ok, err := s.flow.AddPhoto(photo)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().Equal(capture.StateIdle, s.flow.CameraState())
	s.Require().Equal(int64(0), s.cam.OpenStreams())
	s.Require().Len(s.flow.Photos(), 1)
}

func (s *FlowSuite) TestAddPhoto_Invalid() {
	_, err := s.flow.AddPhoto("garbage")
	s.Require().ErrorIs(err, capture.ErrInvalidPhoto)
	s.Require().Empty(s.flow.Photos())
}

func (s *FlowSuite) TestCapture_WithoutCamera() {
	_, err := s.flow.CapturePhoto(context.Background())
	s.Require().ErrorIs(err, capture.ErrCameraNotActive)
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowSuite))
}

func TestTypeOptions(t *testing.T) {
	opts := TypeOptions(i18n.New(i18n.LanguagePT))
	require.Len(t, opts, 5)
	require.Equal(t, models.OccurrenceTypeDamage, opts[0].Value)
	require.Equal(t, "Produto Danificado", opts[0].Label)
	require.Equal(t, "Reagendamento", opts[3].Label)
}
