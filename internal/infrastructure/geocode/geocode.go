package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/soil2spoon/go-backend/internal/cfg"
	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

// Validator проверяет адрес доставки через Google Geocoding API.
// Без API-ключа внешняя проверка пропускается целиком, адрес считается
// проверенным локальными правилами.
type Validator struct {
	client *http.Client
	cfg    *cfg.GeocodeCfg
	logger logger.Logger
}

func NewValidator(cfg *cfg.GeocodeCfg, logger logger.Logger) *Validator {
	return &Validator{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress  string `json:"formatted_address"`
		AddressComponents []struct {
			LongName  string   `json:"long_name"`
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// Verify сверяет адрес с результатом геокодирования: адрес должен
// находиться в Индии, а пин-код результата — совпадать с заявленным.
func (v *Validator) Verify(ctx context.Context, req *usecase.VerifyAddressReq) error {
	if v.cfg.APIKey == "" {
		v.logger.Debugf("Geocode API key not set, skipping external address verification")
		return nil
	}

	res, err := v.geocode(ctx, req)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if res.Status != "OK" || len(res.Results) == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrAddressUnverified)
	}

	result := res.Results[0]

	var country, postalCode string
	var hasCountry, hasPostalCode bool
	for _, component := range result.AddressComponents {
		for _, t := range component.Types {
			switch t {
			case "country":
				country = component.LongName
				hasCountry = true
			case "postal_code":
				postalCode = component.LongName
				hasPostalCode = true
			}
		}
	}

	// Отсутствующий в результате компонент не опровергает адрес,
	// соответствующая проверка пропускается.
	if hasCountry && !strings.Contains(strings.ToLower(country), "india") {
		return e.Wrap(whereami.WhereAmI(), e.ErrAddressNotInIndia)
	}

	if hasPostalCode && digits(postalCode) != digits(req.Pincode) {
		return e.Wrap(whereami.WhereAmI(), e.ErrPincodeMismatch)
	}

	return nil
}

func (v *Validator) geocode(ctx context.Context, req *usecase.VerifyAddressReq) (*geocodeResponse, error) {
	query := url.Values{}
	query.Set("address", buildAddress(req))
	query.Set("region", v.cfg.Region)
	query.Set("key", v.cfg.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	httpRes, err := v.client.Do(httpReq)
	if err != nil {
		v.logger.Warnf("Geocode request failed: %v", err)
		return nil, e.ErrGeocodeUnavailable
	}
	defer httpRes.Body.Close()

	if httpRes.StatusCode != http.StatusOK {
		v.logger.Warnf("Geocode responded with status %d", httpRes.StatusCode)
		return nil, e.ErrGeocodeUnavailable
	}

	var res geocodeResponse
	if err := json.NewDecoder(httpRes.Body).Decode(&res); err != nil {
		v.logger.Warnf("Geocode response decode failed: %v", err)
		return nil, e.ErrGeocodeUnavailable
	}

	return &res, nil
}

func buildAddress(req *usecase.VerifyAddressReq) string {
	parts := make([]string, 0, 6)
	for _, part := range []string{req.AddressLine1, req.AddressLine2, req.City, req.State, req.Pincode} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	parts = append(parts, "India")

	return strings.Join(parts, ", ")
}

// digits оставляет в строке только цифры.
func digits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}

	return b.String()
}
