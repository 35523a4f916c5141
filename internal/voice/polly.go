package voice

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PollyClient is the subset of the Polly API the provider uses.
type PollyClient interface {
	DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error)
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// PollyProvider implements Provider on Amazon Polly. Credentials come from
// the standard AWS environment or an IAM role.
type PollyProvider struct {
	client PollyClient
	region string
}

// NewPollyProvider creates an Amazon Polly TTS provider.
func NewPollyProvider(ctx context.Context, region string) (*PollyProvider, error) {
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &PollyProvider{
		client: polly.NewFromConfig(cfg),
		region: region,
	}, nil
}

// NewPollyProviderWithClient injects a client, used by tests.
func NewPollyProviderWithClient(client PollyClient, region string) *PollyProvider {
	return &PollyProvider{client: client, region: region}
}

// Name returns the provider name.
func (p *PollyProvider) Name() string {
	return "polly"
}

// ListVoices returns the available Polly voices.
func (p *PollyProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	result, err := p.client.DescribeVoices(ctx, &polly.DescribeVoicesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list Polly voices: %w", err)
	}

	voices := make([]Voice, 0, len(result.Voices))
	for _, v := range result.Voices {
		voice := Voice{
			ID:       string(v.Id),
			Name:     aws.ToString(v.Name),
			Language: string(v.LanguageCode),
			Description: fmt.Sprintf("%s voice, %s engine supported",
				cases.Title(language.English).String(string(v.Gender)),
				formatSupportedEngines(v.SupportedEngines)),
		}
		switch v.Gender {
		case types.GenderFemale:
			voice.Gender = "female"
		case types.GenderMale:
			voice.Gender = "male"
		}
		voices = append(voices, voice)
	}
	return voices, nil
}

// Synthesize generates audio for one persona reply.
func (p *PollyProvider) Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	voiceID := options.Voice
	if voiceID == "" {
		voiceID = "Joanna"
	}

	outputFormat := options.Format
	if outputFormat == "" {
		outputFormat = "mp3"
	}
	var pollyFormat types.OutputFormat
	switch strings.ToLower(outputFormat) {
	case "mp3":
		pollyFormat = types.OutputFormatMp3
	case "ogg":
		pollyFormat = types.OutputFormatOggVorbis
	case "pcm":
		pollyFormat = types.OutputFormatPcm
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", outputFormat)
	}

	engine := types.EngineNeural
	if options.Engine != "" {
		switch strings.ToLower(options.Engine) {
		case "standard":
			engine = types.EngineStandard
		case "neural":
			engine = types.EngineNeural
		case "long-form":
			engine = types.EngineLongForm
		case "generative":
			engine = types.EngineGenerative
		default:
			log.Warn().Str("engine", options.Engine).Msg("Unknown engine, using neural")
		}
	}

	input := &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		VoiceId:      types.VoiceId(voiceID),
		OutputFormat: pollyFormat,
		Engine:       engine,
		TextType:     types.TextTypeText,
	}

	log.Debug().
		Str("voice_id", voiceID).
		Str("output_format", string(pollyFormat)).
		Str("engine", string(engine)).
		Msg("Making Polly synthesis request")

	result, err := p.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	return result.AudioStream, nil
}

// IsAvailable checks the service with a short-deadline voice listing.
func (p *PollyProvider) IsAvailable(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := p.client.DescribeVoices(checkCtx, &polly.DescribeVoicesInput{})
	return err == nil
}

func formatSupportedEngines(engines []types.Engine) string {
	if len(engines) == 0 {
		return "unknown"
	}
	names := make([]string, len(engines))
	for i, engine := range engines {
		names[i] = string(engine)
	}
	return strings.Join(names, ", ")
}

var _ Provider = (*PollyProvider)(nil)
