package voice

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePollyClient struct {
	describeErr error
	lastInput   *polly.SynthesizeSpeechInput
}

func (f *fakePollyClient) DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &polly.DescribeVoicesOutput{
		Voices: []types.Voice{
			{
				Id:               types.VoiceIdJoanna,
				Name:             aws.String("Joanna"),
				LanguageCode:     types.LanguageCodeEnUs,
				Gender:           types.GenderFemale,
				SupportedEngines: []types.Engine{types.EngineNeural, types.EngineStandard},
			},
		},
	}, nil
}

func (f *fakePollyClient) SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	f.lastInput = params
	return &polly.SynthesizeSpeechOutput{
		AudioStream: io.NopCloser(strings.NewReader("polly-audio")),
	}, nil
}

func TestPollyProviderListVoices(t *testing.T) {
	p := NewPollyProviderWithClient(&fakePollyClient{}, "us-east-1")
	voices, err := p.ListVoices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, "Joanna", voices[0].ID)
	assert.Equal(t, "female", voices[0].Gender)
	assert.Contains(t, voices[0].Description, "neural")
}

func TestPollyProviderSynthesize(t *testing.T) {
	t.Run("defaults to Joanna and mp3", func(t *testing.T) {
		client := &fakePollyClient{}
		p := NewPollyProviderWithClient(client, "us-east-1")
		stream, err := p.Synthesize(context.Background(), "Good evening, detective.", SynthesizeOptions{})
		require.NoError(t, err)
		defer stream.Close()

		assert.Equal(t, types.VoiceId("Joanna"), client.lastInput.VoiceId)
		assert.Equal(t, types.OutputFormatMp3, client.lastInput.OutputFormat)
		assert.Equal(t, types.EngineNeural, client.lastInput.Engine)
	})

	t.Run("honors voice and engine", func(t *testing.T) {
		client := &fakePollyClient{}
		p := NewPollyProviderWithClient(client, "us-east-1")
		_, err := p.Synthesize(context.Background(), "hello", SynthesizeOptions{Voice: "Matthew", Engine: "standard"})
		require.NoError(t, err)
		assert.Equal(t, types.VoiceId("Matthew"), client.lastInput.VoiceId)
		assert.Equal(t, types.EngineStandard, client.lastInput.Engine)
	})

	t.Run("rejects unsupported format", func(t *testing.T) {
		p := NewPollyProviderWithClient(&fakePollyClient{}, "us-east-1")
		_, err := p.Synthesize(context.Background(), "hello", SynthesizeOptions{Format: "flac"})
		assert.Error(t, err)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		p := NewPollyProviderWithClient(&fakePollyClient{}, "us-east-1")
		_, err := p.Synthesize(context.Background(), "", SynthesizeOptions{})
		assert.Error(t, err)
	})
}

func TestPollyProviderIsAvailable(t *testing.T) {
	assert.True(t, NewPollyProviderWithClient(&fakePollyClient{}, "us-east-1").IsAvailable(context.Background()))

	down := &fakePollyClient{describeErr: fmt.Errorf("no credentials")}
	assert.False(t, NewPollyProviderWithClient(down, "us-east-1").IsAvailable(context.Background()))
}
