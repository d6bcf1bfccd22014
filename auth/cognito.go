package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// Provider is the external identity provider.
type Provider interface {
	SignUp(ctx context.Context, username, email, password string) error
	SignIn(ctx context.Context, username, password string) (Session, error)
}

type cognitoAPI interface {
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
}

// CognitoProvider signs users up and in against a Cognito user pool app client.
type CognitoProvider struct {
	client   cognitoAPI
	clientID string
}

func NewCognitoProvider(client cognitoAPI, clientID string) (*CognitoProvider, error) {
	if clientID == "" {
		return nil, errors.New("COGNITO_CLIENT_ID is required")
	}
	return &CognitoProvider{client: client, clientID: clientID}, nil
}

func (p *CognitoProvider) SignUp(ctx context.Context, username, email, password string) error {
	_, err := p.client.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(username),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to sign up %q: %w", username, err)
	}
	return nil
}

func (p *CognitoProvider) SignIn(ctx context.Context, username, password string) (Session, error) {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign in %q: %w", username, err)
	}
	if out.AuthenticationResult == nil {
		// A challenge (MFA, new password) would be required; this client does not answer those.
		return Session{}, fmt.Errorf("failed to sign in %q: unsupported challenge %q", username, out.ChallengeName)
	}
	return Session{IDToken: aws.ToString(out.AuthenticationResult.IdToken)}, nil
}
