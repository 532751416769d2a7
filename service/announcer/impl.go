package announcer

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/chain"
	"github.com/gavelhouse/goapi/domain/listing"
)

type AnnouncerCfg struct {
	DiscordBotKey    string
	DiscordChannelId string
	Denom            domain.DenomUsecase
}

type impl struct {
	cfg     AnnouncerCfg
	discord *discordgo.Session
}

func New(cfg AnnouncerCfg) Announcer {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.DiscordBotKey))
	if err != nil {
		panic("failed to connect to discord")
	}

	return &impl{cfg, discord}
}

func (im *impl) AnnounceSettled(c ctx.Ctx, l *listing.Listing, outcome *listing.SettleOutcome) error {
	chainName, err := chain.GetChainDisplayName(l.ChainId)
	if err != nil {
		c.WithField("chainId", l.ChainId).Warn("unknown chainId")
		chainName = strconv.Itoa(int(l.ChainId))
	}

	var msg *discordgo.MessageEmbed
	if outcome.Winner.IsEmpty() {
		msg = &discordgo.MessageEmbed{
			Title:       "Auction closed without bids",
			Description: fmt.Sprintf("%s #%s returned to seller", l.AssetContract, l.TokenId),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Seller", Value: string(l.Seller)},
				{Name: "Chain", Value: chainName},
			},
		}
	} else {
		price, symbol, err := im.formatAmount(c, l, outcome.Amount)
		if err != nil {
			return err
		}
		msg = &discordgo.MessageEmbed{
			Title:       "Auction settled!",
			Description: fmt.Sprintf("%s #%s sold", l.AssetContract, l.TokenId),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Seller", Value: string(l.Seller)},
				{Name: "Winner", Value: string(outcome.Winner)},
				{Name: "Chain", Value: chainName},
				{Name: "Price", Value: fmt.Sprintf("%s %s", price, symbol)},
			},
		}
	}

	if _, err := im.discord.ChannelMessageSendEmbed(im.cfg.DiscordChannelId, msg); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
		}).Error("discord.ChannelMessageSendEmbed failed")
		return err
	}
	return nil
}

func (im *impl) formatAmount(c ctx.Ctx, l *listing.Listing, amount string) (string, string, error) {
	denom, err := im.cfg.Denom.Get(c, l.ChainId, l.Denom)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": l.ChainId,
			"denom":   l.Denom,
		}).Error("denom.Get failed")
		return "", "", err
	}

	raw, err := domain.ToBig(amount)
	if err != nil {
		return "", "", err
	}

	price, _ := decimal.NewFromBigInt(raw, -denom.TokenDecimals).Float64()
	return strconv.FormatFloat(price, 'f', -1, 64), denom.Symbol, nil
}
