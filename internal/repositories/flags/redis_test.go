package flags_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/flags"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/testutils"
)

type RedisFlagsTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	areas flags.Repository
	dex   flags.Repository
	ctx   context.Context
}

func (s *RedisFlagsTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.ctx = context.Background()

	var err error
	s.areas, err = flags.NewRedis(&flags.RedisConfig{Client: client, Namespace: flags.NamespaceAreas})
	s.Require().NoError(err)
	s.dex, err = flags.NewRedis(&flags.RedisConfig{Client: client, Namespace: flags.NamespaceDexCaught})
	s.Require().NoError(err)
}

func (s *RedisFlagsTestSuite) TestNewRedis() {
	client, _ := testutils.CreateTestRedisClient(s.T())

	testCases := []struct {
		name    string
		cfg     *flags.RedisConfig
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "config cannot be nil"},
		{name: "nil client", cfg: &flags.RedisConfig{Namespace: "areas"}, wantErr: "client cannot be nil"},
		{name: "empty namespace", cfg: &flags.RedisConfig{Client: client}, wantErr: "namespace cannot be empty"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := flags.NewRedis(tc.cfg)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.wantErr)
		})
	}
}

func (s *RedisFlagsTestSuite) TestGet_MissingRunIsClear() {
	out, err := s.areas.Get(s.ctx, flags.GetInput{RunID: testutils.TestRunID, Size: 213})
	s.Require().NoError(err)
	s.Equal(213, out.Flags.Len())
	s.Empty(out.Flags.Ones())
}

func (s *RedisFlagsTestSuite) TestSetAndGet() {
	out, err := s.areas.Set(s.ctx, flags.SetInput{
		RunID:   testutils.TestRunID,
		Offsets: []int{16, 17, 212},
	})
	s.Require().NoError(err)
	s.Equal(3, out.Changed)

	got, err := s.areas.Get(s.ctx, flags.GetInput{RunID: testutils.TestRunID, Size: 213})
	s.Require().NoError(err)
	s.Equal([]int{16, 17, 212}, got.Flags.Ones())
}

func (s *RedisFlagsTestSuite) TestSet_CountsOnlyNewBits() {
	_, err := s.dex.Set(s.ctx, flags.SetInput{RunID: testutils.TestRunID, Offsets: []int{252}})
	s.Require().NoError(err)

	out, err := s.dex.Set(s.ctx, flags.SetInput{RunID: testutils.TestRunID, Offsets: []int{252, 263}})
	s.Require().NoError(err)
	s.Equal(1, out.Changed)
}

func (s *RedisFlagsTestSuite) TestSet_Empty() {
	out, err := s.dex.Set(s.ctx, flags.SetInput{RunID: testutils.TestRunID})
	s.Require().NoError(err)
	s.Zero(out.Changed)
	s.False(s.mr.Exists("nuzlocke:run:" + testutils.TestRunID + ":flags:dex_caught"))
}

func (s *RedisFlagsTestSuite) TestSet_RedisBitOrder() {
	_, err := s.areas.Set(s.ctx, flags.SetInput{RunID: testutils.TestRunID, Offsets: []int{0, 9}})
	s.Require().NoError(err)

	raw, err := s.mr.Get("nuzlocke:run:" + testutils.TestRunID + ":flags:areas")
	s.Require().NoError(err)
	s.Equal([]byte{0x80, 0x40}, []byte(raw))
}

func (s *RedisFlagsTestSuite) TestIsSet() {
	_, err := s.dex.Set(s.ctx, flags.SetInput{RunID: testutils.TestRunID, Offsets: []int{280}})
	s.Require().NoError(err)

	out, err := s.dex.IsSet(s.ctx, flags.IsSetInput{RunID: testutils.TestRunID, Offset: 280})
	s.Require().NoError(err)
	s.True(out.Set)

	out, err = s.dex.IsSet(s.ctx, flags.IsSetInput{RunID: testutils.TestRunID, Offset: 281})
	s.Require().NoError(err)
	s.False(out.Set)
}

func (s *RedisFlagsTestSuite) TestNamespacesAreIsolated() {
	_, err := s.areas.Set(s.ctx, flags.SetInput{RunID: testutils.TestRunID, Offsets: []int{5}})
	s.Require().NoError(err)

	out, err := s.dex.IsSet(s.ctx, flags.IsSetInput{RunID: testutils.TestRunID, Offset: 5})
	s.Require().NoError(err)
	s.False(out.Set)
}

func (s *RedisFlagsTestSuite) TestReset() {
	_, err := s.areas.Set(s.ctx, flags.SetInput{RunID: testutils.TestRunID, Offsets: []int{1, 2}})
	s.Require().NoError(err)

	_, err = s.areas.Reset(s.ctx, flags.ResetInput{RunID: testutils.TestRunID})
	s.Require().NoError(err)

	got, err := s.areas.Get(s.ctx, flags.GetInput{RunID: testutils.TestRunID, Size: 8})
	s.Require().NoError(err)
	s.Empty(got.Flags.Ones())

	// Resetting a run without flags is fine
	_, err = s.areas.Reset(s.ctx, flags.ResetInput{RunID: "run_unknown"})
	s.NoError(err)
}

func (s *RedisFlagsTestSuite) TestInputValidation() {
	_, err := s.areas.Get(s.ctx, flags.GetInput{Size: 8})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.areas.Get(s.ctx, flags.GetInput{RunID: testutils.TestRunID, Size: -1})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.areas.Set(s.ctx, flags.SetInput{RunID: testutils.TestRunID, Offsets: []int{3, -1}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.areas.IsSet(s.ctx, flags.IsSetInput{RunID: testutils.TestRunID, Offset: -2})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.areas.Reset(s.ctx, flags.ResetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisFlagsSuite(t *testing.T) {
	suite.Run(t, new(RedisFlagsTestSuite))
}
